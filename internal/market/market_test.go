package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"stock-verdict/internal/api"
	"stock-verdict/internal/ticker"
	"stock-verdict/internal/types"
)

func TestCurrencySymbol(t *testing.T) {
	tests := map[string]string{
		"RELIANCE.NS": "₹",
		"tcs.bo":      "₹",
		"AAPL":        "$",
		"BRK.B":       "$",
	}
	for ticker, want := range tests {
		if got := CurrencySymbol(ticker); got != want {
			t.Errorf("CurrencySymbol(%s): expected %s, got %s", ticker, want, got)
		}
	}
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		ticker string
		value  float64
		want   string
	}{
		{"RELIANCE.NS", 1.9e13, "₹1900000.00 Cr"},
		{"SMALL.NS", 5e6, "₹5000000.00"},
		{"AAPL", 3.4e12, "$3.40T"},
		{"PLTR", 5.5e10, "$55.00B"},
		{"TINY", 2.5e6, "$2.50M"},
		{"AAPL", 0, "N/A"},
	}
	for _, tt := range tests {
		if got := FormatMarketCap(tt.ticker, tt.value); got != tt.want {
			t.Errorf("FormatMarketCap(%s, %v): expected %s, got %s", tt.ticker, tt.value, tt.want, got)
		}
	}
}

func TestInstrument(t *testing.T) {
	if got := instrument("INFY.NS"); got != "NSE:INFY" {
		t.Errorf("Expected NSE:INFY, got %s", got)
	}
	if got := instrument("INFY.BO"); got != "BSE:INFY" {
		t.Errorf("Expected BSE:INFY, got %s", got)
	}
}

type fakeQuoter struct {
	name     string
	snap     types.MarketSnapshot
	err      error
	indian   bool
	requests int
}

func (f *fakeQuoter) Name() string { return f.name }
func (f *fakeQuoter) Supports(symbol string) bool {
	return !f.indian || ticker.IsIndian(symbol)
}
func (f *fakeQuoter) Quote(context.Context, string) (types.MarketSnapshot, error) {
	f.requests++
	return f.snap, f.err
}

func TestServiceMergesQuoters(t *testing.T) {
	kite := &fakeQuoter{name: "kite", indian: true, snap: types.MarketSnapshot{
		CurrentPrice: types.Float64(2500), Volume: types.Int64(1000),
	}}
	yahoo := &fakeQuoter{name: "yahoo", snap: types.MarketSnapshot{
		CurrentPrice: types.Float64(2490), PERatio: types.Float64(28.4), MarketCap: "₹16.9 Cr",
	}}

	res := NewService(kite, yahoo).Snapshot(context.Background(), "RELIANCE.NS")
	if !res.Available {
		t.Fatalf("Expected available snapshot, got reason %q", res.Reason)
	}
	snap := res.Value
	if *snap.CurrentPrice != 2500 {
		t.Errorf("Expected first quoter price 2500, got %v", *snap.CurrentPrice)
	}
	if snap.PERatio == nil || *snap.PERatio != 28.4 {
		t.Errorf("Expected PE filled from yahoo, got %v", snap.PERatio)
	}
	if snap.Source != "kite+yahoo" {
		t.Errorf("Expected source kite+yahoo, got %s", snap.Source)
	}
	if snap.CurrencySymbol != "₹" {
		t.Errorf("Expected ₹, got %s", snap.CurrencySymbol)
	}
}

func TestServiceSkipsUnsupported(t *testing.T) {
	kite := &fakeQuoter{name: "kite", indian: true}
	yahoo := &fakeQuoter{name: "yahoo", snap: types.MarketSnapshot{CurrentPrice: types.Float64(190)}}

	res := NewService(kite, yahoo).Snapshot(context.Background(), "AAPL")
	if kite.requests != 0 {
		t.Errorf("Expected kite to be skipped for AAPL, got %d requests", kite.requests)
	}
	if res.Value.MarketCap != "N/A" || res.Value.Source != "yahoo" {
		t.Errorf("Unexpected snapshot %+v", res.Value)
	}
}

func TestServicePlaceholderWhenAllFail(t *testing.T) {
	yahoo := &fakeQuoter{name: "yahoo", err: errors.New("HTTP 401")}

	res := NewService(yahoo).Snapshot(context.Background(), "TCS.NS")
	if res.Available {
		t.Fatal("Expected unavailable result")
	}
	if res.Value.Source != "unavailable" || res.Value.CurrentPrice != nil {
		t.Errorf("Expected placeholder snapshot, got %+v", res.Value)
	}
	if res.Value.CurrencySymbol != "₹" {
		t.Errorf("Expected ₹ placeholder, got %s", res.Value.CurrencySymbol)
	}
	if res.Reason == "" {
		t.Error("Expected a reason")
	}
}

func TestYahooQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbols") != "INFY.NS" {
			t.Errorf("Unexpected symbols %q", r.URL.Query().Get("symbols"))
		}
		w.Write([]byte(`{"quoteResponse":{"result":[{"symbol":"INFY.NS","regularMarketPrice":1523.456,"regularMarketChangePercent":-1.2345,"trailingPE":24.111,"marketCap":6.3e12,"regularMarketVolume":4200000}],"error":null}}`))
	}))
	defer srv.Close()

	y := NewYahoo(time.Second, api.WithBaseURL(srv.URL))
	snap, err := y.Quote(context.Background(), "INFY.NS")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if *snap.CurrentPrice != 1523.46 {
		t.Errorf("Expected 1523.46, got %v", *snap.CurrentPrice)
	}
	if *snap.ChangePercent != -1.23 {
		t.Errorf("Expected -1.23, got %v", *snap.ChangePercent)
	}
	if *snap.PERatio != 24.11 {
		t.Errorf("Expected 24.11, got %v", *snap.PERatio)
	}
	if snap.MarketCap != "₹630000.00 Cr" {
		t.Errorf("Expected ₹630000.00 Cr, got %s", snap.MarketCap)
	}
	if *snap.Volume != 4200000 {
		t.Errorf("Expected volume 4200000, got %v", *snap.Volume)
	}
}

func TestYahooEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse":{"result":[]}}`))
	}))
	defer srv.Close()

	if _, err := NewYahoo(time.Second, api.WithBaseURL(srv.URL)).Quote(context.Background(), "NOPE"); err == nil {
		t.Error("Expected error for empty result")
	}
}

type fakeKite struct {
	quote kiteconnect.Quote
	err   error
	asked []string
}

func (f *fakeKite) GetQuote(instruments ...string) (kiteconnect.Quote, error) {
	f.asked = append(f.asked, instruments...)
	return f.quote, f.err
}

func TestKiteQuote(t *testing.T) {
	q := kiteconnect.Quote{}
	entry := q["NSE:INFY"]
	entry.LastPrice = 1100
	entry.Volume = 5000
	entry.OHLC.Close = 1000
	q["NSE:INFY"] = entry

	fk := &fakeKite{quote: q}
	snap, err := (&Kite{kc: fk}).Quote(context.Background(), "INFY.NS")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fk.asked[0] != "NSE:INFY" {
		t.Errorf("Expected NSE:INFY request, got %v", fk.asked)
	}
	if *snap.CurrentPrice != 1100 || *snap.ChangePercent != 10 || *snap.Volume != 5000 {
		t.Errorf("Unexpected snapshot %+v", snap)
	}
}

func TestKiteMissingInstrument(t *testing.T) {
	fk := &fakeKite{quote: kiteconnect.Quote{}}
	if _, err := (&Kite{kc: fk}).Quote(context.Background(), "INFY.NS"); err == nil {
		t.Error("Expected error for missing instrument")
	}
}
