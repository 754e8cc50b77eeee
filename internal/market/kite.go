package market

import (
	"context"
	"fmt"
	"net/http"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"stock-verdict/internal/ticker"
	"stock-verdict/internal/types"
)

// quoteFetcher is the slice of the Kite Connect client used here.
type quoteFetcher interface {
	GetQuote(instruments ...string) (kiteconnect.Quote, error)
}

// Kite quotes NSE and BSE listings through Zerodha Kite Connect.
type Kite struct {
	kc quoteFetcher
}

func NewKite(apiKey, accessToken string, timeout time.Duration) *Kite {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	kc.SetHTTPClient(&http.Client{Timeout: timeout})
	return &Kite{kc: kc}
}

func (k *Kite) Name() string { return "kite" }

func (k *Kite) Supports(symbol string) bool { return ticker.IsIndian(symbol) }

// instrument maps "INFY.NS" to "NSE:INFY" and "INFY.BO" to "BSE:INFY".
func instrument(symbol string) string {
	return ticker.Exchange(symbol) + ":" + ticker.Base(symbol)
}

func (k *Kite) Quote(ctx context.Context, symbol string) (types.MarketSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return types.MarketSnapshot{}, err
	}

	inst := instrument(symbol)
	quotes, err := k.kc.GetQuote(inst)
	if err != nil {
		return types.MarketSnapshot{}, fmt.Errorf("kite quote %s: %w", inst, err)
	}
	q, ok := quotes[inst]
	if !ok || q.LastPrice <= 0 {
		return types.MarketSnapshot{}, fmt.Errorf("kite quote %s: no data", inst)
	}

	snap := types.MarketSnapshot{
		CurrentPrice: types.Float64(round2(q.LastPrice)),
		Volume:       types.Int64(int64(q.Volume)),
	}
	if prev := q.OHLC.Close; prev > 0 {
		snap.ChangePercent = types.Float64(round2((q.LastPrice - prev) / prev * 100))
	}
	return snap, nil
}
