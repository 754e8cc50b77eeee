package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"stock-verdict/internal/types"
	"stock-verdict/internal/verdict"
)

func sampleReport() *verdict.Report {
	return &verdict.Report{
		Ticker:   "INFY.NS",
		Currency: "₹",
		Market:   types.MarketSnapshot{CurrentPrice: types.Float64(1500)},
		Verdict: types.Verdict{
			Signal:        types.Hold,
			Confidence:    50,
			Reasons:       []string{"Mixed indicators", "Fairly valued"},
			AIExplanation: "Rule-based verdict.",
			RiskLevel:     types.RiskMedium,
			Timeframe:     types.MediumTerm,
		},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, "text", sampleReport()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	out := buf.String()
	for _, want := range []string{"INFY.NS  HOLD (confidence 50%)", "Price:      ₹1500.00", "  - Fairly valued", "Risk:       MEDIUM"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, "json", sampleReport()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if m["ticker"] != "INFY.NS" {
		t.Errorf("Expected ticker INFY.NS, got %v", m["ticker"])
	}
}

func TestDocFlags(t *testing.T) {
	var d docFlags
	_ = d.Set("https://a")
	_ = d.Set("https://b")
	if d.String() != "https://a,https://b" {
		t.Errorf("Expected joined docs, got %s", d.String())
	}
}
