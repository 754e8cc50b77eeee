package verdict

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/logger"
	"stock-verdict/internal/metrics"
	"stock-verdict/internal/ticker"
	"stock-verdict/internal/types"
)

// Source names used in logs, metrics and Report.Unavailable.
const (
	SourceMarket    = "market"
	SourceNews      = "news"
	SourceSocial    = "social"
	SourceDocuments = "documents"
)

// Report is the full answer for one analyze request.
type Report struct {
	RequestID   string                    `json:"request_id"`
	Ticker      string                    `json:"ticker"`
	Timestamp   time.Time                 `json:"timestamp"`
	Currency    string                    `json:"currency"`
	Market      types.MarketSnapshot      `json:"market_data"`
	Sentiment   types.AggregatedSentiment `json:"sentiment"`
	Verdict     types.Verdict             `json:"analysis"`
	Unavailable map[string]string         `json:"unavailable_sources,omitempty"`
}

// Journal persists finished reports.
type Journal interface {
	Record(r *Report) error
}

// Service fetches collaborator data in parallel and runs the orchestrator.
type Service struct {
	market       interfaces.MarketSource
	news         interfaces.NewsSource
	social       interfaces.SocialSource
	documents    interfaces.DocumentSource
	orchestrator *Orchestrator
	metrics      *metrics.Recorder
	journal      Journal
}

type ServiceOption func(*Service)

// WithDocuments enables document excerpts for requests that supply URLs.
func WithDocuments(d interfaces.DocumentSource) ServiceOption {
	return func(s *Service) { s.documents = d }
}

func WithMetrics(r *metrics.Recorder) ServiceOption {
	return func(s *Service) { s.metrics = r }
}

func WithJournal(j Journal) ServiceOption {
	return func(s *Service) { s.journal = j }
}

func NewService(market interfaces.MarketSource, news interfaces.NewsSource, social interfaces.SocialSource, orchestrator *Orchestrator, opts ...ServiceOption) *Service {
	s := &Service{
		market:       market,
		news:         news,
		social:       social,
		orchestrator: orchestrator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze produces a report for symbol. Collaborator failures degrade the
// report; only an empty ticker is an error.
func (s *Service) Analyze(ctx context.Context, symbol string, documentURLs []string) (*Report, error) {
	symbol = ticker.Normalize(symbol)
	if symbol == "" {
		return nil, ErrEmptyTicker
	}

	requestID := uuid.NewString()
	op := logger.StartOperation(ctx, "verdict.analyze", "ticker", symbol, "request_id", requestID)
	ctx = op.GetContext()

	var (
		wg     sync.WaitGroup
		market types.SourceResult[types.MarketSnapshot]
		news   types.SourceResult[[]types.TextItem]
		social types.SourceResult[[]types.TextItem]
		docs   types.SourceResult[types.DeepAnalysis]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		market = s.market.Snapshot(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		news = s.news.Headlines(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		social = s.social.Posts(ctx, symbol)
	}()
	if s.documents != nil && len(documentURLs) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			docs = s.documents.Extract(ctx, documentURLs)
		}()
	}
	wg.Wait()

	unavailable := make(map[string]string)
	s.noteUnavailable(ctx, symbol, SourceMarket, market.Available, market.Reason, unavailable)
	s.noteUnavailable(ctx, symbol, SourceNews, news.Available, news.Reason, unavailable)
	s.noteUnavailable(ctx, symbol, SourceSocial, social.Available, social.Reason, unavailable)
	if len(documentURLs) > 0 {
		reason := docs.Reason
		if s.documents == nil {
			reason = "document extraction disabled"
		}
		s.noteUnavailable(ctx, symbol, SourceDocuments, docs.Available, reason, unavailable)
	}

	var deep *types.DeepAnalysis
	if docs.Available {
		deep = &docs.Value
	}

	out, err := s.orchestrator.Run(ctx, symbol, market.Value, news.Value, social.Value, deep)
	if err != nil {
		op.EndWithError(err)
		return nil, err
	}
	op.End("signal", string(out.Verdict.Signal), "unavailable_sources", len(unavailable))

	report := &Report{
		RequestID: requestID,
		Ticker:    symbol,
		Timestamp: time.Now().UTC(),
		Currency:  market.Value.CurrencySymbol,
		Market:    market.Value,
		Sentiment: out.Sentiment,
		Verdict:   out.Verdict,
	}
	if len(unavailable) > 0 {
		report.Unavailable = unavailable
	}
	if s.journal != nil {
		if err := s.journal.Record(report); err != nil {
			logger.Warn(ctx, "Failed to journal verdict", "ticker", symbol, "error", err)
		}
	}
	return report, nil
}

func (s *Service) noteUnavailable(ctx context.Context, symbol, source string, ok bool, reason string, into map[string]string) {
	if ok {
		return
	}
	logger.SourceUnavailable(ctx, symbol, source, reason)
	s.metrics.RecordUnavailable(source)
	into[source] = reason
}
