package market

import (
	"context"
	"math"
	"strings"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/logger"
	"stock-verdict/internal/types"
)

const sourceUnavailable = "unavailable"

// Service merges quotes from an ordered chain of backends. Later backends
// only fill fields the earlier ones left empty.
type Service struct {
	quoters []interfaces.Quoter
}

var _ interfaces.MarketSource = (*Service)(nil)

func NewService(quoters ...interfaces.Quoter) *Service {
	return &Service{quoters: quoters}
}

// Placeholder is the snapshot used when no backend returned data.
func Placeholder(ticker string) types.MarketSnapshot {
	return types.MarketSnapshot{
		MarketCap:      "N/A",
		CurrencySymbol: CurrencySymbol(ticker),
		Source:         sourceUnavailable,
	}
}

func (s *Service) Snapshot(ctx context.Context, ticker string) types.SourceResult[types.MarketSnapshot] {
	merged := types.MarketSnapshot{CurrencySymbol: CurrencySymbol(ticker)}
	var used, failures []string

	for _, q := range s.quoters {
		if !q.Supports(ticker) {
			continue
		}
		if complete(merged) {
			break
		}

		snap, err := q.Quote(ctx, ticker)
		if err != nil {
			logger.Warn(ctx, "Quote backend failed", "ticker", ticker, "backend", q.Name(), "error", err)
			failures = append(failures, q.Name()+": "+err.Error())
			continue
		}
		if fill(&merged, snap) {
			used = append(used, q.Name())
		}
	}

	if len(used) == 0 {
		reason := "no quote backend returned data"
		if len(failures) > 0 {
			reason = strings.Join(failures, "; ")
		}
		res := types.Unavailable[types.MarketSnapshot](reason)
		res.Value = Placeholder(ticker)
		return res
	}

	if merged.MarketCap == "" {
		merged.MarketCap = "N/A"
	}
	merged.Source = strings.Join(used, "+")
	return types.Available(merged)
}

// fill copies the fields dst is missing and reports whether any were set.
func fill(dst *types.MarketSnapshot, src types.MarketSnapshot) bool {
	changed := false
	if dst.CurrentPrice == nil && src.CurrentPrice != nil {
		dst.CurrentPrice, changed = src.CurrentPrice, true
	}
	if dst.ChangePercent == nil && src.ChangePercent != nil {
		dst.ChangePercent, changed = src.ChangePercent, true
	}
	if dst.PERatio == nil && src.PERatio != nil {
		dst.PERatio, changed = src.PERatio, true
	}
	if dst.Volume == nil && src.Volume != nil {
		dst.Volume, changed = src.Volume, true
	}
	if dst.MarketCap == "" && src.MarketCap != "" && src.MarketCap != "N/A" {
		dst.MarketCap, changed = src.MarketCap, true
	}
	return changed
}

func complete(s types.MarketSnapshot) bool {
	return s.CurrentPrice != nil && s.ChangePercent != nil && s.PERatio != nil &&
		s.Volume != nil && s.MarketCap != ""
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return types.Float64(round2(*v))
}
