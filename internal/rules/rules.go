// Package rules holds the deterministic verdict used when no LLM answer is
// available.
package rules

import (
	"math"

	"stock-verdict/internal/types"
)

const (
	buySentiment  = 0.4
	buyMaxPE      = 50.0
	sellSentiment = -0.2
	sellMinPE     = 100.0

	// NeutralPE stands in for a missing or non-finite PE ratio.
	NeutralPE = 50.0
)

// Evaluate maps overall sentiment and PE ratio to a signal and two reasons.
// Clauses are checked in order; the first match wins.
func Evaluate(sentiment float64, pe *float64) (types.Signal, []string) {
	ratio := NeutralPE
	if pe != nil && !math.IsNaN(*pe) && !math.IsInf(*pe, 0) {
		ratio = *pe
	}

	switch {
	case sentiment > buySentiment && ratio < buyMaxPE:
		return types.Buy, []string{"Strong positive sentiment", "Attractive valuation"}
	case sentiment < sellSentiment || ratio > sellMinPE:
		return types.Sell, []string{"Negative sentiment trend", "Valuation concerns"}
	default:
		return types.Hold, []string{"Mixed indicators", "Fairly valued"}
	}
}
