// Package yahoo fetches daily bars from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/newthinker/prospect/internal/collector"
	"github.com/newthinker/prospect/internal/core"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	userAgent      = "Mozilla/5.0 (compatible; prospect/1.0)"
)

// Client implements collector.Provider on top of the Yahoo chart endpoint.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a Yahoo client with a 10 second request timeout.
func New() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
	}
}

func (c *Client) Name() string {
	return "yahoo"
}

// DailyHistory fetches daily OHLCV bars for symbol between start and end.
// Rows with missing prices are skipped rather than zero-filled.
func (c *Client) DailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]core.Bar, error) {
	if err := collector.ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d&events=history",
		c.baseURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, core.Wrapf(core.ErrFetchFailed, "building request: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, core.Wrapf(core.ErrFetchFailed, "fetching %s: %v", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.Wrapf(core.ErrFetchFailed, "unexpected status %d for %s", resp.StatusCode, symbol)
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, core.Wrapf(core.ErrFetchFailed, "decoding response: %v", err)
	}

	if result.Chart.Error != nil {
		return nil, core.Wrapf(core.ErrFetchFailed, "yahoo: %s", result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 {
		return nil, core.Wrapf(core.ErrNoData, "no chart result for %s", symbol)
	}

	r := result.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return nil, core.Wrapf(core.ErrNoData, "no quote data for %s", symbol)
	}
	quote := r.Indicators.Quote[0]

	bars := make([]core.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		var volume float64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = float64(*quote.Volume[i])
		}
		bars = append(bars, core.Bar{
			Date:   core.Day(time.Unix(ts, 0).UTC()),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}

	if len(bars) == 0 {
		return nil, core.Wrapf(core.ErrNoData, "no usable bars for %s", symbol)
	}
	return bars, nil
}

// chart endpoint response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []quoteBlock `json:"quote"`
	} `json:"indicators"`
}

type quoteBlock struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}
