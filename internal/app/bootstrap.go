// Package app wires configuration into the verdict service. Both binaries
// start here.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"stock-verdict/internal/deep"
	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/journal"
	"stock-verdict/internal/llm"
	"stock-verdict/internal/llm/claude"
	"stock-verdict/internal/llm/gemini"
	"stock-verdict/internal/llm/llmobs"
	"stock-verdict/internal/llm/noop"
	"stock-verdict/internal/llm/openai"
	"stock-verdict/internal/logger"
	"stock-verdict/internal/market"
	"stock-verdict/internal/metrics"
	"stock-verdict/internal/news"
	"stock-verdict/internal/sentiment"
	"stock-verdict/internal/social"
	"stock-verdict/internal/store"
	"stock-verdict/internal/trace"
	"stock-verdict/internal/verdict"
)

// Version is reported in traces and the health endpoint.
const Version = "1.0.0"

// App holds the wired service graph.
type App struct {
	Config   *store.Config
	Provider interfaces.Provider
	Verdicts *verdict.Service
	News     *news.Service
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder
}

// InitializeSystem loads .env and starts logging and tracing.
func InitializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(Version); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// LoadConfig loads path and logs failures.
func LoadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// Build wires every collaborator for cfg. Metrics go to a fresh registry.
func Build(ctx context.Context, cfg *store.Config) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec := metrics.New(reg)

	provider := initializeProvider(ctx, cfg, rec)
	client := llm.NewClient(provider,
		llm.WithAttempts(cfg.LLM.Attempts),
		llm.WithRetryPause(cfg.LLM.RetryPause),
		llm.WithAttemptTimeout(cfg.LLM.AttemptTimeout),
		llm.WithSampling(cfg.LLM.Temperature, cfg.LLM.MaxTokens),
		llm.WithRequestsPerMinute(cfg.LLM.RequestsPerMinute),
		llm.WithMetrics(rec),
	)

	newsSvc := news.NewService(cfg.News)
	orchestrator := verdict.NewOrchestrator(sentiment.NewAggregator(nil), client)

	opts := []verdict.ServiceOption{
		verdict.WithDocuments(deep.NewExtractor(cfg.Documents)),
		verdict.WithMetrics(rec),
	}
	if j := initializeJournal(ctx, cfg); j != nil {
		opts = append(opts, verdict.WithJournal(j))
	}

	svc := verdict.NewService(
		initializeMarket(ctx, cfg),
		newsSvc,
		social.NewReddit(cfg.Social, ""),
		orchestrator,
		opts...,
	)

	return &App{
		Config:   cfg,
		Provider: provider,
		Verdicts: svc,
		News:     newsSvc,
		Registry: reg,
		Metrics:  rec,
	}
}

// initializeProvider picks the LLM adapter and wraps it with observability
func initializeProvider(ctx context.Context, cfg *store.Config, rec *metrics.Recorder) interfaces.Provider {
	var provider interfaces.Provider

	key := cfg.APIKey()
	switch cfg.LLM.Provider {
	case "OPENAI":
		provider = openai.New(cfg.LLM, key)
	case "CLAUDE":
		provider = claude.New(cfg.LLM, key)
	case "GEMINI":
		provider = gemini.New(cfg.LLM, key)
	default:
		provider = noop.New()
	}

	if !provider.Configured() {
		logger.Warn(ctx, "No LLM credential configured - verdicts will be rule-based",
			"provider", cfg.LLM.Provider,
			"api_key_env", cfg.LLM.APIKeyEnv,
		)
	} else {
		logger.Info(ctx, "LLM provider ready", "provider", provider.Name(), "model", cfg.LLM.Model)
	}

	return llmobs.Wrap(provider, rec)
}

// initializeJournal opens the verdict journal and compresses old days
func initializeJournal(ctx context.Context, cfg *store.Config) *journal.Journal {
	if !cfg.Journal.Enabled {
		return nil
	}
	j := journal.New(cfg.Journal.Dir)
	if err := j.CompressOlder(cfg.Journal.RetentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old journals", "error", err)
	}
	logger.Info(ctx, "Verdict journal enabled", "dir", cfg.Journal.Dir)
	return j
}

// initializeMarket builds the quote chain: Kite first for Indian listings
// when credentials exist, Yahoo for everything.
func initializeMarket(ctx context.Context, cfg *store.Config) *market.Service {
	var quoters []interfaces.Quoter

	if cfg.Market.KiteEnabled {
		apiKey := strings.TrimSpace(os.Getenv(cfg.Market.APIKeyEnv))
		token := strings.TrimSpace(os.Getenv(cfg.Market.AccessTokenEnv))
		if apiKey != "" && token != "" {
			quoters = append(quoters, market.NewKite(apiKey, token, cfg.Market.Timeout))
			logger.Info(ctx, "Using Kite Connect quotes for NSE/BSE listings")
		} else {
			logger.Warn(ctx, "Kite enabled but credentials missing - falling back to Yahoo",
				"api_key_env", cfg.Market.APIKeyEnv,
				"access_token_env", cfg.Market.AccessTokenEnv,
			)
		}
	}

	quoters = append(quoters, market.NewYahoo(cfg.Market.Timeout))
	return market.NewService(quoters...)
}
