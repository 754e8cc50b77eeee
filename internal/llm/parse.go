package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"stock-verdict/internal/types"
)

const (
	DefaultConfidence  = 50
	DefaultExplanation = "Unable to generate complete analysis. Please review the data manually."
	maxReasons         = 3
)

// DefaultReasons back-fill a reply that carries no usable reasons.
var DefaultReasons = []string{"Analysis incomplete", "Insufficient data", "Manual review recommended"}

var (
	ErrNoJSON          = errors.New("no JSON object in completion")
	ErrNotConfigured   = errors.New("no LLM credential configured")
	ErrEmptyCompletion = errors.New("empty completion")
)

// ParseVerdict repairs and validates a completion. Missing or out-of-range
// fields are defaulted; only text without a decodable JSON object fails.
func ParseVerdict(text string) (types.Verdict, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return types.Verdict{}, err
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return types.Verdict{}, fmt.Errorf("decode completion: %w", err)
	}
	if m == nil {
		return types.Verdict{}, ErrNoJSON
	}

	v := types.Verdict{
		Signal:        types.ParseSignal(signalField(m)),
		Confidence:    confidenceField(m["confidence"]),
		Reasons:       reasonsField(m["reasons"]),
		AIExplanation: stringField(m["ai_explanation"]),
		TargetPrice:   priceField(m["target_price"]),
	}
	if v.AIExplanation == "" {
		v.AIExplanation = DefaultExplanation
	}
	v.RiskLevel, _ = types.ParseRiskLevel(stringField(m["risk_level"]))
	v.Timeframe, _ = types.ParseTimeframe(stringField(m["timeframe"]))

	return v, nil
}

// extractJSON strips markdown fences and, failing that, falls back to the
// span between the first '{' and the last '}'.
func extractJSON(text string) (string, error) {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```")
		if nl := strings.IndexByte(t, '\n'); nl >= 0 && isFenceTag(t[:nl]) {
			t = t[nl+1:]
		} else if len(t) >= 4 && strings.EqualFold(t[:4], "json") {
			t = t[4:]
		}
	}
	t = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "```"))

	if strings.HasPrefix(t, "{") && json.Valid([]byte(t)) {
		return t, nil
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		return t[start : end+1], nil
	}
	return "", ErrNoJSON
}

func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

func signalField(m map[string]any) string {
	if s := stringField(m["signal"]); s != "" {
		return s
	}
	return stringField(m["verdict"])
}

func stringField(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func confidenceField(v any) int {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(x), "%"), 64)
		if err != nil {
			return DefaultConfidence
		}
		f = parsed
	default:
		return DefaultConfidence
	}
	if math.IsNaN(f) {
		return DefaultConfidence
	}
	return ClampConfidence(int(math.Max(-1e6, math.Min(1e6, math.Trunc(f)))))
}

func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

func reasonsField(v any) []string {
	var out []string
	switch x := v.(type) {
	case []any:
		for _, r := range x {
			if s := stringField(r); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(x); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultReasons...)
	}
	if len(out) > maxReasons {
		out = out[:maxReasons]
	}
	return out
}

func priceField(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		cleaned := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' || r == '.' {
				return r
			}
			return -1
		}, x)
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}
