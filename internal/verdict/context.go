package verdict

import (
	"fmt"
	"strconv"
	"strings"

	"stock-verdict/internal/types"
)

// MaxPromptHeadlines bounds the headlines embedded in the prompt.
const MaxPromptHeadlines = 5

// BuildContext renders the prompt body for one ticker. It only formats; the
// sentiment has already been aggregated.
func BuildContext(ticker string, snap types.MarketSnapshot, s types.AggregatedSentiment, deep *types.DeepAnalysis) types.VerdictContext {
	var b strings.Builder

	fmt.Fprintf(&b, "STOCK: %s\n", ticker)
	if snap.CurrentPrice != nil {
		fmt.Fprintf(&b, "PRICE: %s%.2f", snap.CurrencySymbol, *snap.CurrentPrice)
		if snap.ChangePercent != nil {
			fmt.Fprintf(&b, " (%+.2f%% today)", *snap.ChangePercent)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("PRICE: N/A (quote unavailable)\n")
	}
	fmt.Fprintf(&b, "P/E RATIO: %s\n", optionalFloat(snap.PERatio))
	if snap.MarketCap != "" {
		fmt.Fprintf(&b, "MARKET CAP: %s\n", snap.MarketCap)
	} else {
		b.WriteString("MARKET CAP: N/A\n")
	}
	if snap.Volume != nil {
		fmt.Fprintf(&b, "VOLUME: %d\n", *snap.Volume)
	}

	b.WriteString("\nSENTIMENT:\n")
	fmt.Fprintf(&b, "- Overall: %.2f (%s)\n", s.OverallScore, s.OverallLabel)
	fmt.Fprintf(&b, "- News: %.2f\n", s.News.Score)
	fmt.Fprintf(&b, "- Social: %.2f (%s) from %d posts\n", s.Social.Score, s.Social.Label, s.Social.Mentions)

	b.WriteString("\nNEWS HEADLINES:\n")
	if len(s.News.Items) == 0 {
		b.WriteString("- none available\n")
	}
	for i, item := range s.News.Items {
		if i == MaxPromptHeadlines {
			break
		}
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", item.Source, item.Title, item.Label)
	}

	if !deep.Empty() {
		b.WriteString("\nDOCUMENT EXCERPTS")
		if deep.Title != "" {
			fmt.Fprintf(&b, " (%s)", deep.Title)
		}
		b.WriteString(":\n")
		for _, ex := range deep.Excerpts {
			fmt.Fprintf(&b, "- %s\n", ex.Text)
		}
	}

	return types.VerdictContext{
		Ticker:           ticker,
		Prompt:           b.String(),
		OverallSentiment: s.OverallScore,
		PERatio:          snap.PERatio,
	}
}

func optionalFloat(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
