package news

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"stock-verdict/internal/store"
	"stock-verdict/internal/types"
)

type stubScraper struct {
	items []types.TextItem
	err   error
	calls int
}

func (s *stubScraper) ScrapeHeadlines(_ context.Context, _ string, maxItems int) ([]types.TextItem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.items) > maxItems {
		return s.items[:maxItems], nil
	}
	return s.items, nil
}

func testConfig() store.NewsConfig {
	return store.NewsConfig{
		Enabled:  true,
		MaxItems: 10,
		CacheTTL: time.Hour,
		Timeout:  time.Second,
	}
}

func TestHeadlineCache(t *testing.T) {
	cache := newHeadlineCache(1 * time.Second)

	items := []types.TextItem{{Title: "Reliance hits record high", Source: "Mint"}}
	cache.set("RELIANCE.NS", items)

	retrieved, _, found := cache.get("RELIANCE.NS")
	if !found {
		t.Fatal("Expected to find cached headlines")
	}
	if len(retrieved) != 1 || retrieved[0].Title != items[0].Title {
		t.Errorf("Expected %v, got %v", items, retrieved)
	}

	time.Sleep(1100 * time.Millisecond)
	if _, _, found = cache.get("RELIANCE.NS"); found {
		t.Error("Expected cache entry to be expired")
	}
}

func TestCacheCleanup(t *testing.T) {
	cache := newHeadlineCache(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		cache.set(fmt.Sprintf("SYM%d", i), nil)
	}

	time.Sleep(100 * time.Millisecond)
	cache.cleanup()

	cache.mu.RLock()
	count := len(cache.data)
	cache.mu.RUnlock()

	if count != 0 {
		t.Errorf("Expected 0 cache entries after cleanup, got %d", count)
	}
}

func TestServiceDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	scraper := &stubScraper{items: []types.TextItem{{Title: "x"}}}
	svc := newService(cfg, scraper)

	res := svc.Headlines(context.Background(), "TCS.NS")
	if res.Available {
		t.Error("Expected disabled service to be unavailable")
	}
	if res.Reason != "news disabled" {
		t.Errorf("Expected disabled reason, got %q", res.Reason)
	}
	if scraper.calls != 0 {
		t.Errorf("Expected no scrape calls, got %d", scraper.calls)
	}
}

func TestHeadlinesCached(t *testing.T) {
	scraper := &stubScraper{items: []types.TextItem{
		{Title: "TCS wins large deal", Source: "ET"},
		{Title: "TCS margins under pressure", Source: "BS"},
	}}
	svc := newService(testConfig(), scraper)
	ctx := context.Background()

	first := svc.Headlines(ctx, "tcs.ns")
	second := svc.Headlines(ctx, "TCS.NS")

	if !first.Available || !second.Available {
		t.Fatal("Expected headlines to be available")
	}
	if len(second.Value) != 2 {
		t.Errorf("Expected 2 headlines, got %d", len(second.Value))
	}
	if scraper.calls != 1 {
		t.Errorf("Expected one scrape for two lookups, got %d", scraper.calls)
	}
}

func TestHeadlinesFailureAndEmpty(t *testing.T) {
	ctx := context.Background()

	failing := newService(testConfig(), &stubScraper{err: errors.New("status 503")})
	if res := failing.Headlines(ctx, "INFY.NS"); res.Available || res.Reason != "status 503" {
		t.Errorf("Expected unavailable with scrape error, got %+v", res)
	}

	empty := newService(testConfig(), &stubScraper{})
	if res := empty.Headlines(ctx, "INFY.NS"); res.Available {
		t.Error("Expected zero headlines to be unavailable")
	}
	if len(empty.CachedTickers()) != 0 {
		t.Error("Expected empty results not to be cached")
	}
}

func TestCachedTickersAndClear(t *testing.T) {
	svc := newService(testConfig(), &stubScraper{items: []types.TextItem{{Title: "headline"}}})
	ctx := context.Background()

	for _, sym := range []string{"TCS.NS", "INFY.NS", "RELIANCE.NS"} {
		svc.Headlines(ctx, sym)
	}

	cached := svc.CachedTickers()
	want := []string{"INFY.NS", "RELIANCE.NS", "TCS.NS"}
	if len(cached) != len(want) {
		t.Fatalf("Expected %d cached tickers, got %d", len(want), len(cached))
	}
	for i := range want {
		if cached[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, cached[i])
		}
	}

	svc.ClearCache()
	if len(svc.CachedTickers()) != 0 {
		t.Error("Expected cache to be empty after ClearCache")
	}
}
