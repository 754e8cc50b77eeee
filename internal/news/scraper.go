package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"stock-verdict/internal/logger"
	"stock-verdict/internal/ticker"
	"stock-verdict/internal/types"
)

const (
	googleNewsRSS    = "https://news.google.com/rss/search"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Scraper collects headlines from the Google News RSS search feed
type Scraper struct {
	feedURL  string
	language string
	region   string
	timeout  time.Duration
}

// ScraperOption configures a Scraper
type ScraperOption func(*Scraper)

// WithFeedURL points the scraper at a different RSS endpoint
func WithFeedURL(u string) ScraperOption {
	return func(s *Scraper) { s.feedURL = u }
}

// WithLocale sets the hl/gl feed parameters, e.g. "en-IN" and "IN"
func WithLocale(language, region string) ScraperOption {
	return func(s *Scraper) {
		if language != "" {
			s.language = language
		}
		if region != "" {
			s.region = region
		}
	}
}

// NewScraper creates a new news scraper
func NewScraper(timeout time.Duration, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		feedURL:  googleNewsRSS,
		language: "en-IN",
		region:   "IN",
		timeout:  timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// searchURL builds the feed query for a ticker
func (s *Scraper) searchURL(symbol string) string {
	lang := s.language
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	q := url.Values{}
	q.Set("q", ticker.Base(symbol)+" stock")
	q.Set("hl", s.language)
	q.Set("gl", s.region)
	q.Set("ceid", s.region+":"+lang)
	return s.feedURL + "?" + q.Encode()
}

// ScrapeHeadlines returns up to maxItems distinct headlines for symbol
func (s *Scraper) ScrapeHeadlines(ctx context.Context, symbol string, maxItems int) ([]types.TextItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(defaultUserAgent),
	)
	c.SetRequestTimeout(s.timeout)

	items := make([]types.TextItem, 0, maxItems)
	seen := make(map[string]bool)

	c.OnXML("//item", func(e *colly.XMLElement) {
		if len(items) >= maxItems {
			return
		}
		item := splitHeadline(e.ChildText("title"), e.ChildText("source"))
		if item.Title == "" || seen[item.Title] {
			return
		}
		seen[item.Title] = true
		items = append(items, item)
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("news feed %s: status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	feed := s.searchURL(symbol)
	logger.Debug(ctx, "Fetching news feed", "symbol", symbol, "url", feed)

	if err := c.Visit(feed); err != nil && scrapeErr == nil {
		scrapeErr = err
	}
	if scrapeErr != nil {
		return nil, scrapeErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// splitHeadline separates the " - Publisher" suffix Google News appends to titles
func splitHeadline(title, source string) types.TextItem {
	title = strings.TrimSpace(title)
	source = strings.TrimSpace(source)

	if source != "" {
		title = strings.TrimSpace(strings.TrimSuffix(title, " - "+source))
		return types.TextItem{Title: title, Source: source}
	}
	if i := strings.LastIndex(title, " - "); i > 0 {
		return types.TextItem{
			Title:  strings.TrimSpace(title[:i]),
			Source: strings.TrimSpace(title[i+3:]),
		}
	}
	return types.TextItem{Title: title, Source: "Google News"}
}
