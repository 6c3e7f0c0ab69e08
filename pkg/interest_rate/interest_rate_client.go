package interestrate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultBaseUrl = "https://www.ustreasuryyieldcurve.com/api/v1"

type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

func NewClient() Client {
	return Client{
		HttpClient: http.DefaultClient,
		BaseUrl:    defaultBaseUrl,
	}
}

func interestRateMonthsFromApi(in string) (int, error) {
	cleanedStr := strings.Replace(in, "yield_", "", 1)
	unit := string(cleanedStr[len(cleanedStr)-1])
	cleanedStr = cleanedStr[:len(cleanedStr)-1]
	months, err := strconv.Atoi(cleanedStr)
	if err != nil {
		return 0, err
	}

	if unit == "y" {
		months *= 12
	}

	return months, nil
}

// InterestRateMap holds a yield curve keyed by months to maturity, rates
// as fractions.
type InterestRateMap struct {
	Rates map[int]float64
}

// GetRate returns the curve's rate at the given tenor, clamping outside
// the known range and averaging the neighbors between known tenors.
func (im InterestRateMap) GetRate(monthsOut int) float64 {
	if len(im.Rates) == 0 {
		return 0
	}

	v, ok := im.Rates[monthsOut]
	if ok {
		return v
	}

	keys := []int{}
	for k := range im.Rates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})

	if monthsOut < keys[0] {
		return im.Rates[keys[0]]
	}
	if monthsOut > keys[len(keys)-1] {
		return im.Rates[keys[len(keys)-1]]
	}

	for i := 0; i < len(keys)-1; i++ {
		key1 := keys[i]
		key2 := keys[i+1]
		if monthsOut > key1 && monthsOut < key2 {
			return (im.Rates[key1] + im.Rates[key2]) / 2
		}
	}

	return 0
}

// AnnualRiskFreeRate is the one-year point of the curve, the rate the
// Sharpe and Sortino computations discount by.
func (im InterestRateMap) AnnualRiskFreeRate() float64 {
	return im.GetRate(12)
}

func (c Client) GetYieldCurve(ctx context.Context, date time.Time) (*InterestRateMap, error) {
	keys := []string{
		"yield_1m",
		"yield_2m",
		"yield_3m",
		"yield_4m",
		"yield_6m",
		"yield_1y",
		"yield_2y",
		"yield_3y",
		"yield_5y",
		"yield_7y",
		"yield_10y",
		"yield_20y",
		"yield_30y",
	}

	url := fmt.Sprintf("%s/yield_curve_snapshot?date=%s&offset=0", c.BaseUrl, date.Format(time.DateOnly))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != 200 {
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	responseBody := []map[string]interface{}{}

	err = json.Unmarshal(responseBytes, &responseBody)
	if err != nil {
		return nil, err
	}

	out := map[int]float64{}

	for _, snapshot := range responseBody {
		for k, v := range snapshot {
			for _, field := range keys {
				if k == field {
					// TODO: interpolate a null tenor from its neighbors instead of dropping it
					months, err := interestRateMonthsFromApi(k)
					if err != nil {
						return nil, err
					}
					if v != nil {
						out[months] = v.(float64) / 100
					}
				}
			}
		}
	}

	return &InterestRateMap{
		Rates: out,
	}, nil
}
