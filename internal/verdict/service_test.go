package verdict

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-verdict/internal/metrics"
	"stock-verdict/internal/types"
)

type fakeMarket struct{ res types.SourceResult[types.MarketSnapshot] }

func (f fakeMarket) Snapshot(context.Context, string) types.SourceResult[types.MarketSnapshot] {
	return f.res
}

type fakeItems struct {
	res   types.SourceResult[[]types.TextItem]
	calls atomic.Int32
}

func (f *fakeItems) Headlines(context.Context, string) types.SourceResult[[]types.TextItem] {
	f.calls.Add(1)
	return f.res
}

func (f *fakeItems) Posts(context.Context, string) types.SourceResult[[]types.TextItem] {
	f.calls.Add(1)
	return f.res
}

type fakeDocs struct {
	urls []string
	res  types.SourceResult[types.DeepAnalysis]
}

func (f *fakeDocs) Extract(_ context.Context, urls []string) types.SourceResult[types.DeepAnalysis] {
	f.urls = urls
	return f.res
}

func unavailableCount(t *testing.T, reg *prometheus.Registry, source string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "verdict_source_unavailable_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "source" && lp.GetValue() == source {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestServiceAnalyze(t *testing.T) {
	snap := types.MarketSnapshot{CurrentPrice: types.Float64(1500), PERatio: types.Float64(24), CurrencySymbol: "₹", Source: "yahoo"}
	news := &fakeItems{res: types.Available(sampleNews())}
	social := &fakeItems{res: types.Unavailable[[]types.TextItem]("search failed: IndianStreetBets")}
	docs := &fakeDocs{res: types.Available(types.DeepAnalysis{Excerpts: []types.Excerpt{{URL: "u", Text: "Profit doubled."}}})}
	analyzer := &recordingAnalyzer{reply: types.Verdict{Signal: types.Buy, Confidence: 80}}

	reg := prometheus.NewRegistry()
	svc := NewService(fakeMarket{res: types.Available(snap)}, news, social,
		NewOrchestrator(nil, analyzer),
		WithDocuments(docs),
		WithMetrics(metrics.New(reg)),
	)

	report, err := svc.Analyze(context.Background(), "infy.ns", []string{"https://example.com/q2"})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RequestID)
	assert.Equal(t, "INFY.NS", report.Ticker)
	assert.Equal(t, "₹", report.Currency)
	assert.Equal(t, "yahoo", report.Market.Source)
	assert.Equal(t, types.Buy, report.Verdict.Signal)
	assert.Len(t, report.Sentiment.News.Items, 2)
	assert.Equal(t, map[string]string{SourceSocial: "search failed: IndianStreetBets"}, report.Unavailable)
	assert.Equal(t, []string{"https://example.com/q2"}, docs.urls)
	assert.Contains(t, analyzer.last.Prompt, "- Profit doubled.")
	assert.Equal(t, 1.0, unavailableCount(t, reg, SourceSocial))
	assert.Equal(t, 0.0, unavailableCount(t, reg, SourceNews))
}

type memJournal struct{ reports []*Report }

func (m *memJournal) Record(r *Report) error {
	m.reports = append(m.reports, r)
	return nil
}

func TestServiceAnalyzeJournals(t *testing.T) {
	j := &memJournal{}
	items := &fakeItems{res: types.Available(sampleNews())}
	svc := NewService(fakeMarket{res: types.Available(types.MarketSnapshot{})}, items, items,
		NewOrchestrator(nil, &recordingAnalyzer{reply: types.Verdict{Signal: types.Sell}}),
		WithJournal(j),
	)

	report, err := svc.Analyze(context.Background(), "TCS.NS", nil)
	require.NoError(t, err)
	require.Len(t, j.reports, 1)
	assert.Same(t, report, j.reports[0])
	assert.Nil(t, report.Unavailable)
}

func TestServiceAnalyzeEverythingUnavailable(t *testing.T) {
	placeholder := types.MarketSnapshot{MarketCap: "N/A", CurrencySymbol: "$", Source: "unavailable"}
	market := fakeMarket{res: types.SourceResult[types.MarketSnapshot]{Value: placeholder, Reason: "all quote backends failed"}}
	none := &fakeItems{res: types.Unavailable[[]types.TextItem]("down")}
	analyzer := &recordingAnalyzer{reply: types.Verdict{Signal: types.Hold, Confidence: 50}}

	svc := NewService(market, none, none, NewOrchestrator(nil, analyzer))
	report, err := svc.Analyze(context.Background(), "ZZZ", []string{"https://example.com/doc"})
	require.NoError(t, err)

	assert.Equal(t, "unavailable", report.Market.Source)
	assert.Equal(t, 0.0, report.Sentiment.OverallScore)
	assert.Len(t, report.Unavailable, 4)
	assert.Equal(t, "document extraction disabled", report.Unavailable[SourceDocuments])
	assert.Contains(t, analyzer.last.Prompt, "PRICE: N/A (quote unavailable)")
	assert.Equal(t, int32(2), none.calls.Load())
}

func TestServiceAnalyzeEmptyTicker(t *testing.T) {
	news := &fakeItems{}
	svc := NewService(fakeMarket{}, news, news, NewOrchestrator(nil, &recordingAnalyzer{}))

	_, err := svc.Analyze(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrEmptyTicker)
	assert.Zero(t, news.calls.Load())
}

func TestReportJSON(t *testing.T) {
	r := Report{Ticker: "TCS.NS", Verdict: types.Verdict{Signal: types.Sell}}
	b, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	analysis, ok := m["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "SELL", analysis["signal"])
	assert.Contains(t, m, "market_data")
	assert.NotContains(t, m, "unavailable_sources")
}
