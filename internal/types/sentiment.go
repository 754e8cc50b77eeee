package types

// SentimentLabel is the coarse polarity bucket of a sentiment score.
type SentimentLabel string

const (
	Positive SentimentLabel = "positive"
	Neutral  SentimentLabel = "neutral"
	Negative SentimentLabel = "negative"
)

// TextItem is a headline or post title produced by a news or social source.
type TextItem struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

type ScoredItem struct {
	TextItem
	Score float64        `json:"score"`
	Label SentimentLabel `json:"label"`
}

type NewsSentiment struct {
	Score float64      `json:"score"`
	Items []ScoredItem `json:"items"`
}

type SocialSentiment struct {
	Score    float64        `json:"score"`
	Mentions int            `json:"mentions"`
	Label    SentimentLabel `json:"label"`
}

// AggregatedSentiment is built fresh for every analysis request.
type AggregatedSentiment struct {
	OverallScore float64         `json:"overall_score"`
	OverallLabel SentimentLabel  `json:"overall_label"`
	News         NewsSentiment   `json:"news"`
	Social       SocialSentiment `json:"social"`
}
