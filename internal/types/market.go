package types

// MarketSnapshot is the quote view consumed by the verdict pipeline.
// Nil pointers mean the value was not available from any source.
type MarketSnapshot struct {
	CurrentPrice   *float64 `json:"current_price"`
	ChangePercent  *float64 `json:"change_percent"`
	PERatio        *float64 `json:"pe_ratio"`
	MarketCap      string   `json:"market_cap"`
	Volume         *int64   `json:"volume"`
	CurrencySymbol string   `json:"currency_symbol"`
	Source         string   `json:"source"`
}

// Excerpt is a sentence lifted from a filing or report.
type Excerpt struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// DeepAnalysis carries optional document excerpts for the prompt.
type DeepAnalysis struct {
	Title    string    `json:"title,omitempty"`
	Excerpts []Excerpt `json:"excerpts"`
}

func (d *DeepAnalysis) Empty() bool {
	return d == nil || len(d.Excerpts) == 0
}

// SourceResult is the tagged outcome of a collaborator call.
type SourceResult[T any] struct {
	Value     T
	Available bool
	Reason    string
}

func Available[T any](v T) SourceResult[T] {
	return SourceResult[T]{Value: v, Available: true}
}

func Unavailable[T any](reason string) SourceResult[T] {
	return SourceResult[T]{Reason: reason}
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }
