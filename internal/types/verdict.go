package types

import "strings"

type Signal string

const (
	Buy  Signal = "BUY"
	Sell Signal = "SELL"
	Hold Signal = "HOLD"
)

// ParseSignal upper-cases s and maps anything outside BUY/SELL/HOLD to HOLD.
// WAIT is the legacy spelling of HOLD.
func ParseSignal(s string) Signal {
	switch v := Signal(strings.ToUpper(strings.TrimSpace(s))); v {
	case Buy, Sell, Hold:
		return v
	default:
		return Hold
	}
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch v := RiskLevel(strings.ToUpper(strings.TrimSpace(s))); v {
	case RiskLow, RiskMedium, RiskHigh:
		return v, true
	}
	return RiskMedium, false
}

type Timeframe string

const (
	ShortTerm  Timeframe = "Short-term"
	MediumTerm Timeframe = "Medium-term"
	LongTerm   Timeframe = "Long-term"
)

func ParseTimeframe(s string) (Timeframe, bool) {
	for _, tf := range []Timeframe{ShortTerm, MediumTerm, LongTerm} {
		if strings.EqualFold(strings.TrimSpace(s), string(tf)) {
			return tf, true
		}
	}
	return MediumTerm, false
}

// VerdictContext is the per-request input to the verdict analyzer: the
// rendered prompt plus the two numbers the rule engine needs.
type VerdictContext struct {
	Ticker           string
	Prompt           string
	OverallSentiment float64
	PERatio          *float64
}

type Verdict struct {
	Signal        Signal    `json:"signal"`
	Confidence    int       `json:"confidence"`
	Reasons       []string  `json:"reasons"`
	AIExplanation string    `json:"ai_explanation"`
	RiskLevel     RiskLevel `json:"risk_level,omitempty"`
	TargetPrice   *float64  `json:"target_price"`
	Timeframe     Timeframe `json:"timeframe,omitempty"`
}
