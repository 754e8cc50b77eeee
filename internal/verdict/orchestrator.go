// Package verdict turns collaborator data for one ticker into a trading
// verdict.
package verdict

import (
	"context"
	"errors"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/sentiment"
	"stock-verdict/internal/ticker"
	"stock-verdict/internal/types"
)

var ErrEmptyTicker = errors.New("ticker is required")

// Orchestrator sequences aggregation, prompt rendering and the analyzer call.
// It does no I/O of its own.
type Orchestrator struct {
	aggregator *sentiment.Aggregator
	analyzer   interfaces.VerdictAnalyzer
}

func NewOrchestrator(aggregator *sentiment.Aggregator, analyzer interfaces.VerdictAnalyzer) *Orchestrator {
	if aggregator == nil {
		aggregator = sentiment.NewAggregator(nil)
	}
	return &Orchestrator{aggregator: aggregator, analyzer: analyzer}
}

// Outcome is the verdict together with the sentiment it was built from.
type Outcome struct {
	Sentiment types.AggregatedSentiment
	Verdict   types.Verdict
}

// ProduceVerdict returns the analyzer's verdict unmodified. The only error is
// ErrEmptyTicker.
func (o *Orchestrator) ProduceVerdict(ctx context.Context, symbol string, snap types.MarketSnapshot, news, social []types.TextItem, deep *types.DeepAnalysis) (types.Verdict, error) {
	out, err := o.Run(ctx, symbol, snap, news, social, deep)
	if err != nil {
		return types.Verdict{}, err
	}
	return out.Verdict, nil
}

// Run is ProduceVerdict that also hands back the aggregated sentiment.
func (o *Orchestrator) Run(ctx context.Context, symbol string, snap types.MarketSnapshot, news, social []types.TextItem, deep *types.DeepAnalysis) (Outcome, error) {
	symbol = ticker.Normalize(symbol)
	if symbol == "" {
		return Outcome{}, ErrEmptyTicker
	}

	agg := o.aggregator.Aggregate(news, social)
	vc := BuildContext(symbol, snap, agg, deep)

	return Outcome{
		Sentiment: agg,
		Verdict:   o.analyzer.Analyze(ctx, vc),
	}, nil
}
