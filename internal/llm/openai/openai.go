package openai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/llm"
	"stock-verdict/internal/store"
)

// Provider calls OpenAI (or any compatible endpoint) through an eino chat model.
type Provider struct {
	apiKey  string
	modelID string
	baseURL string

	once    sync.Once
	chat    model.ChatModel
	initErr error
}

var _ interfaces.Provider = (*Provider)(nil)

func New(cfg store.LLMConfig, apiKey string) *Provider {
	return &Provider{
		apiKey:  apiKey,
		modelID: cfg.Model,
		baseURL: cfg.BaseURL,
	}
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Configured() bool { return p.apiKey != "" }

func (p *Provider) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("openai: %w", llm.ErrNotConfigured)
	}

	p.once.Do(func() {
		p.chat, p.initErr = einoopenai.NewChatModel(context.Background(), &einoopenai.ChatModelConfig{
			BaseURL: p.baseURL,
			APIKey:  p.apiKey,
			Model:   p.modelID,
		})
	})
	if p.initErr != nil {
		return "", fmt.Errorf("openai: init chat model: %w", p.initErr)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: req.System},
		{Role: schema.User, Content: req.User},
	}

	resp, err := p.chat.Generate(ctx, messages,
		model.WithTemperature(req.Temperature),
		model.WithMaxTokens(req.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("openai: generate: %w", err)
	}

	out := strings.TrimSpace(resp.Content)
	if out == "" {
		return "", fmt.Errorf("openai: %w", llm.ErrEmptyCompletion)
	}
	return out, nil
}
