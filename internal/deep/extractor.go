// Package deep pulls financially relevant sentences out of reports and
// articles the caller points at.
package deep

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"stock-verdict/internal/api"
	"stock-verdict/internal/logger"
	"stock-verdict/internal/store"
	"stock-verdict/internal/types"
)

const (
	maxExcerptLen  = 300
	defaultTimeout = 20 * time.Second
)

var keywords = []string{"revenue", "profit", "growth", "margin", "guidance", "earnings"}

var sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

// Extractor fetches documents and keeps keyword sentences from their body
type Extractor struct {
	client      *api.Client
	maxExcerpts int
}

func NewExtractor(cfg store.DocumentsConfig) *Extractor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Extractor{
		client: api.NewClient(
			api.WithTimeout(timeout),
			api.WithHeaders(api.BrowserHeaders()),
			api.WithHeader("Accept", "text/html,application/xhtml+xml"),
			api.WithLogging(true),
		),
		maxExcerpts: cfg.MaxExcerpts,
	}
}

// Extract reads every URL in order until maxExcerpts sentences are found.
// Unreachable documents are skipped.
func (e *Extractor) Extract(ctx context.Context, urls []string) types.SourceResult[types.DeepAnalysis] {
	if len(urls) == 0 {
		return types.Unavailable[types.DeepAnalysis]("no documents supplied")
	}

	op := logger.StartOperation(ctx, "deep.extract", "documents", len(urls))
	ctx = op.GetContext()

	var analysis types.DeepAnalysis
	for _, raw := range urls {
		if len(analysis.Excerpts) >= e.maxExcerpts || ctx.Err() != nil {
			break
		}
		title, sentences, err := e.fetch(ctx, raw)
		if err != nil {
			logger.Warn(ctx, "Document extraction failed", "url", raw, "error", err)
			continue
		}
		if analysis.Title == "" {
			analysis.Title = title
		}
		for _, s := range sentences {
			if len(analysis.Excerpts) >= e.maxExcerpts {
				break
			}
			analysis.Excerpts = append(analysis.Excerpts, types.Excerpt{URL: raw, Text: s})
		}
	}
	op.End("excerpts", len(analysis.Excerpts))

	if analysis.Empty() {
		return types.Unavailable[types.DeepAnalysis]("no financial excerpts found")
	}
	return types.Available(analysis)
}

func (e *Extractor) fetch(ctx context.Context, raw string) (string, []string, error) {
	pageURL, err := url.Parse(raw)
	if err != nil || pageURL.Scheme == "" || pageURL.Host == "" {
		return "", nil, fmt.Errorf("invalid document url %q", raw)
	}

	resp, err := e.client.GET(ctx, raw)
	if err != nil {
		return "", nil, err
	}

	article, err := readability.FromReader(bytes.NewReader(resp.Body), pageURL)
	if err != nil {
		return "", nil, fmt.Errorf("readability: %w", err)
	}

	sentences, err := keySentences(article.Content, e.maxExcerpts)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(article.Title), sentences, nil
}

// keySentences walks the paragraphs of an HTML fragment and returns up to
// limit sentences mentioning a financial keyword, each at most maxExcerptLen.
func keySentences(html string, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var out []string
	seen := make(map[string]bool)
	doc.Find("p, li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		for _, s := range splitSentences(text) {
			if len(out) >= limit {
				return false
			}
			if seen[s] || !hasKeyword(s) {
				continue
			}
			seen[s] = true
			out = append(out, truncate(s, maxExcerptLen))
		}
		return len(out) < limit
	})
	return out, nil
}

// splitSentences breaks text after terminal punctuation followed by space,
// keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for _, m := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:m[1]]); s != "" {
			out = append(out, s)
		}
		start = m[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func hasKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// truncate cuts s to n bytes on a rune boundary and marks the cut
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut]) + "..."
}
