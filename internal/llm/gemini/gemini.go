package gemini

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/llm"
	"stock-verdict/internal/store"
)

// Provider calls the Gemini API with JSON response mode enabled.
type Provider struct {
	apiKey  string
	modelID string

	once    sync.Once
	client  *genai.Client
	initErr error
}

var _ interfaces.Provider = (*Provider)(nil)

func New(cfg store.LLMConfig, apiKey string) *Provider {
	return &Provider{apiKey: apiKey, modelID: cfg.Model}
}

func (p *Provider) Name() string { return "gemini" }

func (p *Provider) Configured() bool { return p.apiKey != "" }

func (p *Provider) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("gemini: %w", llm.ErrNotConfigured)
	}

	p.once.Do(func() {
		p.client, p.initErr = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  p.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if p.initErr != nil {
		return "", fmt.Errorf("gemini: init client: %w", p.initErr)
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		MaxOutputTokens:  int32(req.MaxTokens),
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.modelID, genai.Text(req.User), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates: %w", llm.ErrEmptyCompletion)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: %w", llm.ErrEmptyCompletion)
	}
	return text, nil
}
