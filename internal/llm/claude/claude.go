package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/llm"
	"stock-verdict/internal/store"
)

// Provider calls the Anthropic Messages API
type Provider struct {
	client  anthropic.Client
	apiKey  string
	modelID string
}

var _ interfaces.Provider = (*Provider)(nil)

// New builds the SDK client with retries disabled; the verdict client owns
// the retry policy.
func New(cfg store.LLMConfig, apiKey string) *Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Provider{
		client:  anthropic.NewClient(opts...),
		apiKey:  apiKey,
		modelID: cfg.Model,
	}
}

func (p *Provider) Name() string { return "claude" }

func (p *Provider) Configured() bool { return p.apiKey != "" }

func (p *Provider) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("claude: %w", llm.ErrNotConfigured)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.modelID),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
		Temperature: anthropic.Float(float64(req.Temperature)),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude: messages: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("claude: %w", llm.ErrEmptyCompletion)
	}
	return text.String(), nil
}
