package interestrate

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGetYieldCurve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/yield_curve_snapshot", r.URL.Path)
		require.Equal(t, "2020-01-01", r.URL.Query().Get("date"))
		fmt.Fprint(w, `[{"date": "2020-01-01", "yield_1m": 1.48, "yield_1y": 1.59, "yield_2y": null, "yield_10y": 1.92, "unrelated": 7}]`)
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL}
	curve, err := client.GetYieldCurve(context.Background(), time.Date(
		2020, 1, 1, 0, 0, 0, 0, time.UTC,
	))
	require.NoError(t, err)

	expected := map[int]float64{
		1:   0.0148,
		12:  0.0159,
		120: 0.0192,
	}

	require.Equal(
		t,
		"",
		cmp.Diff(
			&InterestRateMap{
				Rates: expected,
			},
			curve,
			cmp.Comparer(func(i, j float64) bool {
				return math.Abs(i-j) < 0.0001
			}),
		),
	)

	require.InDelta(t, 0.0159, curve.AnnualRiskFreeRate(), 0.0001)
}

func TestGetYieldCurveErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try later", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := Client{HttpClient: server.Client(), BaseUrl: server.URL}
	_, err := client.GetYieldCurve(context.Background(), time.Now())
	require.ErrorContains(t, err, "failed with status code 503")
}

func TestInterestRateMapGetRate(t *testing.T) {
	curve := InterestRateMap{Rates: map[int]float64{
		1:  0.01,
		12: 0.02,
		24: 0.03,
	}}

	// exact tenor
	require.InDelta(t, 0.02, curve.GetRate(12), 1e-9)
	// below and above the known range clamp to the ends
	require.InDelta(t, 0.01, curve.GetRate(0), 1e-9)
	require.InDelta(t, 0.03, curve.GetRate(360), 1e-9)
	// between tenors averages the neighbors
	require.InDelta(t, 0.015, curve.GetRate(6), 1e-9)

	require.Zero(t, InterestRateMap{}.GetRate(12))
}
