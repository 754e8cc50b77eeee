package ticker

import "testing"

func TestBase(t *testing.T) {
	tests := map[string]string{
		" infy.ns ": "INFY",
		"TCS.BO":    "TCS",
		"BRK.B":     "BRK.B",
		"AAPL":      "AAPL",
		"M&M.NS":    "M&M",
		".NS":       ".NS",
	}
	for in, want := range tests {
		if got := Base(in); got != want {
			t.Errorf("Base(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestIsIndianAndExchange(t *testing.T) {
	if !IsIndian("reliance.ns") || !IsIndian("TCS.BO") || IsIndian("AAPL") {
		t.Error("Unexpected IsIndian result")
	}
	if Exchange("TCS.BO") != "BSE" || Exchange("INFY.NS") != "NSE" {
		t.Error("Unexpected exchange mapping")
	}
}
