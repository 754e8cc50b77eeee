package sentiment

import (
	"math"

	"stock-verdict/internal/types"
)

const (
	NewsWeight   = 0.6
	SocialWeight = 0.4

	// MaxNewsItems bounds the scored headlines carried in the result.
	MaxNewsItems = 5
)

// Aggregator combines news and social items into one weighted score.
type Aggregator struct {
	scorer Scorer
}

func NewAggregator(scorer Scorer) *Aggregator {
	if scorer == nil {
		scorer = NewLexiconScorer()
	}
	return &Aggregator{scorer: scorer}
}

// Aggregate scores every item and blends the per-source means 60/40.
// An empty source contributes 0, which is indistinguishable from a source
// whose items are all neutral.
func (a *Aggregator) Aggregate(news, social []types.TextItem) types.AggregatedSentiment {
	newsScored := a.scoreAll(news)
	socialScored := a.scoreAll(social)

	newsMean := mean(newsScored)
	socialMean := mean(socialScored)
	overall := round2(NewsWeight*newsMean + SocialWeight*socialMean)

	kept := newsScored
	if len(kept) > MaxNewsItems {
		kept = kept[:MaxNewsItems]
	}

	return types.AggregatedSentiment{
		OverallScore: overall,
		OverallLabel: Label(overall),
		News: types.NewsSentiment{
			Score: round2(newsMean),
			Items: kept,
		},
		Social: types.SocialSentiment{
			Score:    round2(socialMean),
			Mentions: len(social),
			Label:    Label(socialMean),
		},
	}
}

func (a *Aggregator) scoreAll(items []types.TextItem) []types.ScoredItem {
	out := make([]types.ScoredItem, 0, len(items))
	for _, it := range items {
		s := clamp(a.scorer.Score(it.Title))
		out = append(out, types.ScoredItem{
			TextItem: it,
			Score:    s,
			Label:    Label(s),
		})
	}
	return out
}

func mean(items []types.ScoredItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += it.Score
	}
	return sum / float64(len(items))
}

func clamp(s float64) float64 {
	if math.IsNaN(s) {
		return 0
	}
	return math.Max(-1, math.Min(1, s))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
