package util

import (
	"time"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

func SameDay(t1, t2 time.Time) bool {
	return t1.Format(layout) == t2.Format(layout)
}

// LastMonth returns the calendar month preceding the given one.
func LastMonth(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}

func NextMonth(month, year int) (int, int) {
	if month == 12 {
		return 1, year + 1
	}
	return month + 1, year
}

// LastQuarter returns the most recent quarter fully completed before the
// given month. Rankings for months inside Q1 read Q4 of the prior year.
func LastQuarter(month, year int) (int, int) {
	if month > 3 {
		return (month - 1) / 3, year
	}
	return 4, year - 1
}

// PrevQuarter steps back one reporting quarter.
func PrevQuarter(quarter, year int) (int, int) {
	if quarter > 1 {
		return quarter - 1, year
	}
	return 4, year - 1
}
