package market

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"stock-verdict/internal/api"
	"stock-verdict/internal/types"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// Yahoo reads the public v7 quote endpoint.
type Yahoo struct {
	client *api.Client
	retry  *api.RetryConfig
}

func NewYahoo(timeout time.Duration, opts ...api.ClientOption) *Yahoo {
	base := []api.ClientOption{
		api.WithBaseURL(yahooBaseURL),
		api.WithTimeout(timeout),
		api.WithHeaders(api.YahooFinanceHeaders()),
		api.WithRateLimit(2, 2),
		api.WithLogging(true),
	}
	return &Yahoo{
		client: api.NewClient(append(base, opts...)...),
		retry:  &api.RetryConfig{MaxAttempts: 2, InitialWait: 500 * time.Millisecond, MaxWait: time.Second},
	}
}

type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string   `json:"symbol"`
			RegularMarketPrice         *float64 `json:"regularMarketPrice"`
			RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
			TrailingPE                 *float64 `json:"trailingPE"`
			MarketCap                  *float64 `json:"marketCap"`
			RegularMarketVolume        *int64   `json:"regularMarketVolume"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"quoteResponse"`
}

func (y *Yahoo) Name() string { return "yahoo" }

func (y *Yahoo) Supports(string) bool { return true }

func (y *Yahoo) Quote(ctx context.Context, ticker string) (types.MarketSnapshot, error) {
	var resp yahooQuoteResponse
	path := "/v7/finance/quote?symbols=" + url.QueryEscape(ticker)
	if err := y.client.GetJSON(ctx, path, &resp, y.retry); err != nil {
		return types.MarketSnapshot{}, fmt.Errorf("yahoo quote %s: %w", ticker, err)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return types.MarketSnapshot{}, fmt.Errorf("yahoo quote %s: no result", ticker)
	}

	q := resp.QuoteResponse.Result[0]
	snap := types.MarketSnapshot{
		CurrentPrice:  roundPtr(q.RegularMarketPrice),
		ChangePercent: roundPtr(q.RegularMarketChangePercent),
		PERatio:       roundPtr(q.TrailingPE),
		Volume:        q.RegularMarketVolume,
	}
	if q.MarketCap != nil {
		snap.MarketCap = FormatMarketCap(ticker, *q.MarketCap)
	}
	return snap, nil
}
