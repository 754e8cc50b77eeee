package news

import (
	"context"
	"sort"
	"sync"
	"time"

	"stock-verdict/internal/logger"
	"stock-verdict/internal/store"
	"stock-verdict/internal/ticker"
	"stock-verdict/internal/types"
)

// headlineSource is the scraper surface the service depends on
type headlineSource interface {
	ScrapeHeadlines(ctx context.Context, symbol string, maxItems int) ([]types.TextItem, error)
}

// Service provides recent headlines per ticker with caching
type Service struct {
	scraper headlineSource
	cache   *headlineCache
	cfg     store.NewsConfig
}

// headlineCache stores scraped headlines temporarily
type headlineCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	items     []types.TextItem
	timestamp time.Time
}

func newHeadlineCache(ttl time.Duration) *headlineCache {
	cache := &headlineCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}

	go cache.cleanupLoop()

	return cache
}

// get retrieves cached headlines if still fresh
func (c *headlineCache) get(symbol string) ([]types.TextItem, time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[symbol]
	if !exists {
		return nil, 0, false
	}

	age := time.Since(entry.timestamp)
	if age > c.ttl {
		return nil, 0, false
	}

	return entry.items, age, true
}

func (c *headlineCache) set(symbol string, items []types.TextItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[symbol] = &cacheEntry{
		items:     items,
		timestamp: time.Now(),
	}
}

// cleanupLoop periodically removes expired entries
func (c *headlineCache) cleanupLoop() {
	tick := time.NewTicker(10 * time.Minute)
	defer tick.Stop()

	for range tick.C {
		c.cleanup()
	}
}

func (c *headlineCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for symbol, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, symbol)
		}
	}
}

// NewService creates a news service backed by the Google News feed
func NewService(cfg store.NewsConfig, opts ...ScraperOption) *Service {
	opts = append([]ScraperOption{WithLocale(cfg.Language, cfg.Region)}, opts...)
	return newService(cfg, NewScraper(cfg.Timeout, opts...))
}

func newService(cfg store.NewsConfig, scraper headlineSource) *Service {
	return &Service{
		scraper: scraper,
		cache:   newHeadlineCache(cfg.CacheTTL),
		cfg:     cfg,
	}
}

// Headlines returns recent headlines for symbol, served from cache when fresh
func (s *Service) Headlines(ctx context.Context, symbol string) types.SourceResult[[]types.TextItem] {
	if !s.cfg.Enabled {
		return types.Unavailable[[]types.TextItem]("news disabled")
	}

	symbol = ticker.Normalize(symbol)
	if cached, age, ok := s.cache.get(symbol); ok {
		logger.Debug(ctx, "Using cached headlines", "symbol", symbol, "age_minutes", age.Minutes())
		return types.Available(cached)
	}

	logger.Info(ctx, "Fetching fresh headlines", "symbol", symbol)
	items, err := s.scraper.ScrapeHeadlines(ctx, symbol, s.cfg.MaxItems)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch headlines", err, "symbol", symbol)
		return types.Unavailable[[]types.TextItem](err.Error())
	}
	if len(items) == 0 {
		return types.Unavailable[[]types.TextItem]("no headlines found")
	}

	s.cache.set(symbol, items)
	return types.Available(items)
}

// ClearCache removes all cached headlines
func (s *Service) ClearCache() {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	s.cache.data = make(map[string]*cacheEntry)
}

// CachedTickers returns the tickers with cached headlines, sorted
func (s *Service) CachedTickers() []string {
	s.cache.mu.RLock()
	defer s.cache.mu.RUnlock()

	symbols := make([]string, 0, len(s.cache.data))
	for symbol := range s.cache.data {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
