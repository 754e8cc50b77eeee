package llm

import (
	"stock-verdict/internal/rules"
	"stock-verdict/internal/types"
)

const (
	UnconfiguredConfidence = 50
	ExhaustedConfidence    = 40

	MarkerUnavailable = "AI unavailable (rule-based)"
	MarkerTimedOut    = "AI request timed out"

	explanationUnconfigured = "Verdict generated using rule-based metrics because no AI credential is configured."
	explanationExhausted    = "AI service unavailable. Falling back to rule-based analysis."
)

// Verdict paths, used for logs and metrics.
const (
	PathLLM          = "llm"
	PathUnconfigured = "rules_unconfigured"
	PathExhausted    = "rules_exhausted"
)

// RuleVerdict builds the deterministic verdict for vc with a fixed confidence
// and a trailing marker reason.
func RuleVerdict(vc types.VerdictContext, confidence int, marker string) types.Verdict {
	signal, reasons := rules.Evaluate(vc.OverallSentiment, vc.PERatio)

	explanation := explanationExhausted
	if marker == MarkerUnavailable {
		explanation = explanationUnconfigured
	}

	return types.Verdict{
		Signal:        signal,
		Confidence:    ClampConfidence(confidence),
		Reasons:       append(reasons, marker),
		AIExplanation: explanation,
		RiskLevel:     types.RiskMedium,
		Timeframe:     types.MediumTerm,
	}
}
