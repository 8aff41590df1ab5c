package exchangerate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/valutatrade/tradehub"
)

func TestFetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/key-123/latest/USD", r.URL.Path)
		w.Write([]byte(`{
			"result": "success",
			"conversion_rates": {"USD": 1, "EUR": 0.9, "GBP": 0.8, "RUB": 90}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "key-123", "USD", []string{"EUR", "GBP", "RUB", "USD"}, time.Second)
	rates, err := c.FetchRates(context.Background())
	require.NoError(t, err)
	// quotes come back inverted: one EUR costs 1/0.9 USD
	require.InDelta(t, 1/0.9, rates["EUR_USD"], 1e-9)
	require.InDelta(t, 1/0.8, rates["GBP_USD"], 1e-9)
	require.InDelta(t, 1.0/90, rates["RUB_USD"], 1e-9)
	// the base itself is never reported as a pair
	require.NotContains(t, rates, "USD_USD")
}

func TestFetchRatesLegacyField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates": {"EUR": 0.9}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "USD", []string{"EUR"}, time.Second)
	rates, err := c.FetchRates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 1)
}

func TestFetchRatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "error", "error-type": "invalid-key"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "bad", "USD", []string{"EUR"}, time.Second)
	_, err := c.FetchRates(context.Background())
	var srcErr *tradehub.SourceError
	require.True(t, errors.As(err, &srcErr), "error = %v", err)
	require.Equal(t, "ExchangeRate-API", srcErr.Source)
	require.Contains(t, srcErr.Reason, "invalid-key")
}

func TestFetchRatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "USD", []string{"EUR"}, time.Second)
	_, err := c.FetchRates(context.Background())
	var srcErr *tradehub.SourceError
	require.True(t, errors.As(err, &srcErr), "error = %v", err)
}

func TestFetchRatesSkipsUnusable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "success", "conversion_rates": {"EUR": -1, "GBP": 0.8}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "USD", []string{"EUR", "GBP"}, time.Second)
	rates, err := c.FetchRates(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, len(rates))
	require.Contains(t, rates, "GBP_USD")
}
