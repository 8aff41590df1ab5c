// Package coingecko fetches crypto spot prices from the CoinGecko
// simple/price endpoint.
package coingecko

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/valutatrade/tradehub"
)

// DefaultIDs maps currency codes to the CoinGecko coin ids the API wants.
var DefaultIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
}

// Client queries CoinGecko for crypto rates against a single vs-currency.
type Client struct {
	url    string
	apiKey string
	base   string            // vs currency, e.g. "usd"
	ids    map[string]string // code -> coingecko id
	http   *http.Client
}

// New builds a client for the given endpoint. base is the cash currency
// code the prices are quoted in. An empty ids map falls back to DefaultIDs.
func New(endpoint, apiKey, base string, ids map[string]string, timeout time.Duration) *Client {
	if len(ids) == 0 {
		ids = DefaultIDs
	}
	return &Client{
		url:    endpoint,
		apiKey: apiKey,
		base:   strings.ToLower(base),
		ids:    ids,
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return "CoinGecko" }

// FetchRates returns one "{CODE}_{BASE}" rate per configured coin.
//
// The endpoint answers with one object per coin id:
//
//	{"bitcoin": {"usd": 60123.45}, "ethereum": {"usd": 2456.78}}
func (c *Client) FetchRates(ctx context.Context) (map[string]float64, error) {
	ids := make([]string, 0, len(c.ids))
	for _, id := range c.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", c.base)
	addr := c.url + "?" + q.Encode()

	var jobj any
	if err := c.jget(ctx, addr, &jobj); err != nil {
		return nil, &tradehub.SourceError{Source: c.Name(), Reason: err.Error()}
	}

	base := strings.ToUpper(c.base)
	rates := make(map[string]float64, len(c.ids))
	for code, id := range c.ids {
		path := fmt.Sprintf("$[%q][%q]", id, c.base)
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			// a coin missing from the response is not fatal, the rest still count
			continue
		}
		val, ok := jval.(float64)
		if !ok || val <= 0 {
			continue
		}
		rates[tradehub.PairKey(code, base)] = val
	}
	if len(rates) == 0 {
		return nil, &tradehub.SourceError{Source: c.Name(), Reason: "no usable prices in response"}
	}
	return rates, nil
}

// jget performs a GET with context and decodes the JSON body into data.
func (c *Client) jget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
