// Package social collects retail chatter about a ticker from Reddit.
package social

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"stock-verdict/internal/api"
	"stock-verdict/internal/logger"
	"stock-verdict/internal/store"
	"stock-verdict/internal/ticker"
	"stock-verdict/internal/types"
)

const redditBaseURL = "https://www.reddit.com"

// searchListing is the subset of the Reddit search listing we read
type searchListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Subreddit string `json:"subreddit"`
				Stickied  bool   `json:"stickied"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Reddit searches a fixed set of subreddits for posts mentioning a ticker
type Reddit struct {
	client     *api.Client
	subreddits []string
	limit      int
	enabled    bool
}

// NewReddit builds a Reddit source. baseURL may be empty for the public site.
func NewReddit(cfg store.SocialConfig, baseURL string) *Reddit {
	if baseURL == "" {
		baseURL = redditBaseURL
	}
	return &Reddit{
		client: api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(cfg.Timeout),
			api.WithHeader("User-Agent", cfg.UserAgent),
			api.WithHeader("Accept", "application/json"),
			api.WithRateLimit(1, 2),
			api.WithLogging(true),
		),
		subreddits: cfg.Subreddits,
		limit:      cfg.Limit,
		enabled:    cfg.Enabled,
	}
}

// Posts returns post titles from every subreddit that answered. A failing
// subreddit is skipped; the source is unavailable only when nothing came back.
func (r *Reddit) Posts(ctx context.Context, symbol string) types.SourceResult[[]types.TextItem] {
	if !r.enabled {
		return types.Unavailable[[]types.TextItem]("social disabled")
	}

	query := ticker.Base(symbol)
	var (
		posts    []types.TextItem
		failures []string
	)
	for _, sub := range r.subreddits {
		if ctx.Err() != nil {
			break
		}
		items, err := r.search(ctx, sub, query)
		if err != nil {
			logger.Warn(ctx, "Subreddit search failed", "subreddit", sub, "symbol", symbol, "error", err)
			failures = append(failures, sub)
			continue
		}
		posts = append(posts, items...)
	}

	if len(posts) == 0 {
		reason := "no posts found"
		if len(failures) > 0 {
			reason = "search failed: " + strings.Join(failures, ", ")
		}
		if err := ctx.Err(); err != nil {
			reason = err.Error()
		}
		return types.Unavailable[[]types.TextItem](reason)
	}
	return types.Available(posts)
}

func (r *Reddit) search(ctx context.Context, subreddit, query string) ([]types.TextItem, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("restrict_sr", "1")
	q.Set("sort", "new")
	q.Set("t", "month")
	q.Set("limit", strconv.Itoa(r.limit))
	path := fmt.Sprintf("/r/%s/search.json?%s", url.PathEscape(subreddit), q.Encode())

	var listing searchListing
	if err := r.client.GetJSON(ctx, path, &listing, &api.RetryConfig{MaxAttempts: 1}); err != nil {
		return nil, err
	}

	items := make([]types.TextItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		title := strings.TrimSpace(child.Data.Title)
		if title == "" || child.Data.Stickied {
			continue
		}
		items = append(items, types.TextItem{Title: title, Source: "r/" + subreddit})
	}
	return items, nil
}
