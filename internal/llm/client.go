package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/logger"
	"stock-verdict/internal/metrics"
	"stock-verdict/internal/trace"
	"stock-verdict/internal/types"
)

const (
	DefaultAttempts       = 3
	DefaultRetryPause     = time.Second
	DefaultAttemptTimeout = 15 * time.Second
	DefaultTemperature    = 0.7
	DefaultMaxTokens      = 1024
)

// Client turns a verdict context into a verdict through an LLM provider,
// retrying at a fixed interval and falling back to the rule engine. The
// client holds only read-only settings and is safe for concurrent use.
type Client struct {
	provider       interfaces.Provider
	attempts       int
	pause          time.Duration
	attemptTimeout time.Duration
	temperature    float32
	maxTokens      int
	limiter        *rate.Limiter
	metrics        *metrics.Recorder
}

var _ interfaces.VerdictAnalyzer = (*Client)(nil)

// Option configures the client
type Option func(*Client)

func WithAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithRetryPause sets the fixed pause between attempts
func WithRetryPause(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.pause = d
		}
	}
}

// WithAttemptTimeout bounds a single completion call
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.attemptTimeout = d
		}
	}
}

func WithSampling(temperature float32, maxTokens int) Option {
	return func(c *Client) {
		c.temperature = temperature
		if maxTokens > 0 {
			c.maxTokens = maxTokens
		}
	}
}

// WithRequestsPerMinute paces completion calls across all requests
func WithRequestsPerMinute(rpm int) Option {
	return func(c *Client) {
		if rpm > 0 {
			c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
		}
	}
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = r
	}
}

// NewClient creates a client around provider. A nil provider behaves as
// unconfigured.
func NewClient(provider interfaces.Provider, opts ...Option) *Client {
	c := &Client{
		provider:       provider,
		attempts:       DefaultAttempts,
		pause:          DefaultRetryPause,
		attemptTimeout: DefaultAttemptTimeout,
		temperature:    DefaultTemperature,
		maxTokens:      DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze never fails: every error path ends in a rule-based verdict.
func (c *Client) Analyze(ctx context.Context, vc types.VerdictContext) types.Verdict {
	ctx, span := trace.StartSpan(ctx, "llm.Analyze")
	defer span.End()

	if c.provider == nil || !c.provider.Configured() {
		v := RuleVerdict(vc, UnconfiguredConfidence, MarkerUnavailable)
		logger.Warn(ctx, "No LLM credential configured, using rule-based verdict", "ticker", vc.Ticker)
		c.finish(ctx, vc.Ticker, v, PathUnconfigured)
		return v
	}

	req := interfaces.CompletionRequest{
		System:      SystemPrompt,
		User:        UserPrompt(vc),
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, c.pause); err != nil {
				lastErr = err
				break
			}
		}

		v, err := c.attempt(ctx, req)
		if err == nil {
			c.finish(ctx, vc.Ticker, v, PathLLM, "attempt", attempt)
			return v
		}
		lastErr = err
		logger.Warn(ctx, "LLM attempt failed",
			"ticker", vc.Ticker,
			"provider", c.provider.Name(),
			"attempt", attempt,
			"max_attempts", c.attempts,
			"error", err,
		)
		if ctx.Err() != nil {
			break
		}
	}

	logger.ErrorWithErr(ctx, "LLM attempts exhausted, using rule-based verdict", lastErr,
		"ticker", vc.Ticker,
		"provider", c.provider.Name(),
	)
	v := RuleVerdict(vc, ExhaustedConfidence, MarkerTimedOut)
	c.finish(ctx, vc.Ticker, v, PathExhausted)
	return v
}

func (c *Client) attempt(ctx context.Context, req interfaces.CompletionRequest) (types.Verdict, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return types.Verdict{}, fmt.Errorf("rate limiter: %w", err)
		}
	}

	actx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	text, err := c.provider.Complete(actx, req)
	if err != nil {
		return types.Verdict{}, err
	}
	return ParseVerdict(text)
}

func (c *Client) finish(ctx context.Context, ticker string, v types.Verdict, path string, fields ...any) {
	c.metrics.RecordVerdict(string(v.Signal), path)
	logger.Verdict(ctx, ticker, string(v.Signal), v.Confidence, path, fields...)
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
