package interfaces

import (
	"context"

	"stock-verdict/internal/types"
)

type MarketSource interface {
	Snapshot(ctx context.Context, ticker string) types.SourceResult[types.MarketSnapshot]
}

// Quoter is one market data backend inside the market service chain.
type Quoter interface {
	Name() string
	Supports(ticker string) bool
	Quote(ctx context.Context, ticker string) (types.MarketSnapshot, error)
}

type NewsSource interface {
	Headlines(ctx context.Context, ticker string) types.SourceResult[[]types.TextItem]
}

type SocialSource interface {
	Posts(ctx context.Context, ticker string) types.SourceResult[[]types.TextItem]
}

type DocumentSource interface {
	Extract(ctx context.Context, urls []string) types.SourceResult[types.DeepAnalysis]
}
