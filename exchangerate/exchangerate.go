// Package exchangerate fetches fiat rates from the ExchangeRate-API v6
// latest endpoint.
package exchangerate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/valutatrade/tradehub"
)

// Client queries ExchangeRate-API for fiat rates quoted against a base
// currency. The endpoint shape is {url}/{apiKey}/latest/{BASE}.
type Client struct {
	url    string
	apiKey string
	base   string
	codes  []string // fiat codes to report, base excluded
	http   *http.Client
}

// New builds a client reporting the given fiat codes against base.
func New(endpoint, apiKey, base string, codes []string, timeout time.Duration) *Client {
	return &Client{
		url:    strings.TrimRight(endpoint, "/"),
		apiKey: apiKey,
		base:   strings.ToUpper(base),
		codes:  codes,
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return "ExchangeRate-API" }

// latestResponse is the subset of the v6 payload we read. The API spells
// the rates table "conversion_rates"; older deployments used "rates".
type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	Rates           map[string]float64 `json:"rates"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// FetchRates returns one "{CODE}_{BASE}" rate per configured fiat code.
// The API quotes base-per-unit-of-base ("how many CODE for one BASE"),
// so rates are inverted to match the hub's from-to direction.
func (c *Client) FetchRates(ctx context.Context) (map[string]float64, error) {
	addr := fmt.Sprintf("%s/%s/latest/%s", c.url, c.apiKey, c.base)

	var payload latestResponse
	if err := c.jget(ctx, addr, &payload); err != nil {
		return nil, &tradehub.SourceError{Source: c.Name(), Reason: err.Error()}
	}
	if payload.Result != "" && payload.Result != "success" {
		reason := payload.ErrorType
		if reason == "" {
			reason = fmt.Sprintf("result %q", payload.Result)
		}
		return nil, &tradehub.SourceError{Source: c.Name(), Reason: reason}
	}
	table := payload.ConversionRates
	if len(table) == 0 {
		table = payload.Rates
	}
	if len(table) == 0 {
		return nil, &tradehub.SourceError{Source: c.Name(), Reason: "no rates table in response"}
	}

	rates := make(map[string]float64, len(c.codes))
	for _, code := range c.codes {
		code = strings.ToUpper(code)
		if code == c.base {
			continue
		}
		v, ok := table[code]
		if !ok || v <= 0 {
			continue
		}
		rates[tradehub.PairKey(code, c.base)] = 1 / v
	}
	if len(rates) == 0 {
		return nil, &tradehub.SourceError{Source: c.Name(), Reason: "no usable rates in response"}
	}
	return rates, nil
}

func (c *Client) jget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
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
