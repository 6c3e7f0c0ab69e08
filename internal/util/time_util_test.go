package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLastMonth(t *testing.T) {
	month, year := LastMonth(1, 2024)
	require.Equal(t, 12, month)
	require.Equal(t, 2023, year)

	month, year = LastMonth(7, 2024)
	require.Equal(t, 6, month)
	require.Equal(t, 2024, year)
}

func TestLastQuarter(t *testing.T) {
	tests := []struct {
		month, year     int
		wantQ, wantYear int
	}{
		{1, 2024, 4, 2023},
		{3, 2024, 4, 2023},
		{4, 2024, 1, 2024},
		{7, 2024, 2, 2024},
		{12, 2024, 3, 2024},
	}
	for _, tc := range tests {
		q, y := LastQuarter(tc.month, tc.year)
		require.Equal(t, tc.wantQ, q, "month %d", tc.month)
		require.Equal(t, tc.wantYear, y, "month %d", tc.month)
	}
}

func TestDateLte(t *testing.T) {
	d1 := NewDate(2024, 3, 15)
	d2 := NewDate(2024, 3, 16)
	require.True(t, DateLte(d1, d2))
	require.True(t, DateLte(d1, d1))
	require.False(t, DateLte(d2, d1))
}
