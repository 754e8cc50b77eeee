package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	News      NewsConfig      `yaml:"news"`
	Social    SocialConfig    `yaml:"social"`
	Market    MarketConfig    `yaml:"market"`
	Documents DocumentsConfig `yaml:"documents"`
	Server    ServerConfig    `yaml:"server"`
	Journal   JournalConfig   `yaml:"journal"`
}

type LLMConfig struct {
	Provider          string        `yaml:"provider" default:"OPENAI"`
	Model             string        `yaml:"model"`
	BaseURL           string        `yaml:"base_url"`
	APIKeyEnv         string        `yaml:"api_key_env"`
	Temperature       float32       `yaml:"temperature" default:"0.7"`
	MaxTokens         int           `yaml:"max_tokens" default:"1024"`
	Attempts          int           `yaml:"attempts" default:"3"`
	RetryPause        time.Duration `yaml:"retry_pause" default:"1s"`
	AttemptTimeout    time.Duration `yaml:"attempt_timeout" default:"15s"`
	RequestsPerMinute int           `yaml:"requests_per_minute" default:"60"`
}

type NewsConfig struct {
	Enabled  bool          `yaml:"enabled" default:"true"`
	MaxItems int           `yaml:"max_items" default:"10"`
	CacheTTL time.Duration `yaml:"cache_ttl" default:"15m"`
	Timeout  time.Duration `yaml:"timeout" default:"10s"`
	Language string        `yaml:"language" default:"en-IN"`
	Region   string        `yaml:"region" default:"IN"`
}

type SocialConfig struct {
	Enabled    bool          `yaml:"enabled" default:"true"`
	Subreddits []string      `yaml:"subreddits" default:"[\"IndianStreetBets\",\"IndiaInvestments\"]"`
	Limit      int           `yaml:"limit" default:"10"`
	Timeout    time.Duration `yaml:"timeout" default:"10s"`
	UserAgent  string        `yaml:"user_agent" default:"stock-verdict/1.0"`
}

type MarketConfig struct {
	KiteEnabled    bool          `yaml:"kite_enabled"`
	APIKeyEnv      string        `yaml:"api_key_env" default:"KITE_API_KEY"`
	AccessTokenEnv string        `yaml:"access_token_env" default:"KITE_ACCESS_TOKEN"`
	Timeout        time.Duration `yaml:"timeout" default:"10s"`
}

type DocumentsConfig struct {
	Timeout     time.Duration `yaml:"timeout" default:"20s"`
	MaxExcerpts int           `yaml:"max_excerpts" default:"3"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr" default:":8000"`
	RequestTimeout time.Duration `yaml:"request_timeout" default:"90s"`
}

type JournalConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir" default:"logs"`
	RetentionDays int    `yaml:"retention_days" default:"30"`
}

var providerDefaults = map[string]struct{ model, keyEnv string }{
	"OPENAI": {"gpt-4o-mini", "OPENAI_API_KEY"},
	"CLAUDE": {"claude-3-5-haiku-latest", "ANTHROPIC_API_KEY"},
	"GEMINI": {"gemini-2.0-flash", "GEMINI_API_KEY"},
	"NONE":   {"", ""},
}

func (c *Config) Validate() error {
	if _, ok := providerDefaults[c.LLM.Provider]; !ok {
		return fmt.Errorf("invalid llm.provider '%s': must be OPENAI, CLAUDE, GEMINI or NONE", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0-2, got %.2f", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Attempts < 1 {
		return fmt.Errorf("llm.attempts must be at least 1, got %d", c.LLM.Attempts)
	}
	if c.LLM.AttemptTimeout <= 0 {
		return errors.New("llm.attempt_timeout must be positive")
	}
	if c.News.MaxItems <= 0 {
		return fmt.Errorf("news.max_items must be positive, got %d", c.News.MaxItems)
	}
	if c.Social.Enabled && len(c.Social.Subreddits) == 0 {
		return errors.New("social.subreddits cannot be empty when social is enabled")
	}
	if c.Journal.Enabled && c.Journal.Dir == "" {
		return errors.New("journal.dir cannot be empty when journal is enabled")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr cannot be empty")
	}
	return nil
}

// applyProviderDefaults fills model and key env for the chosen provider.
func (c *Config) applyProviderDefaults() {
	c.LLM.Provider = strings.ToUpper(strings.TrimSpace(c.LLM.Provider))
	d, ok := providerDefaults[c.LLM.Provider]
	if !ok {
		return
	}
	if c.LLM.Model == "" {
		c.LLM.Model = d.model
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = d.keyEnv
	}
}

// DefaultConfig returns a validated configuration with every default applied.
func DefaultConfig() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	c.applyProviderDefaults()
	return &c
}

// LoadConfig reads a YAML file on top of the defaults. A missing file yields
// the defaults so the binaries still run in rule-based mode.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	c.applyProviderDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// APIKey resolves the LLM credential from the environment.
func (c *Config) APIKey() string {
	if c.LLM.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.LLM.APIKeyEnv))
}
