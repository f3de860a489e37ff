// Package config loads coursefinder settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/poiesic/coursefinder/ai"
	"github.com/poiesic/coursefinder/ingestion"
	"github.com/poiesic/coursefinder/search"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvAPIKey        = "COURSEFINDER_API_KEY"
	EnvEmbeddingHost = "COURSEFINDER_EMBEDDING_HOST"
	EnvChatHost      = "COURSEFINDER_CHAT_HOST"
	EnvData          = "COURSEFINDER_DATA"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Search  SearchConfig  `yaml:"search"`
	Index   IndexConfig   `yaml:"index"`
	AI      AIConfig      `yaml:"ai"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type DataConfig struct {
	Path string `yaml:"path"`
}

type SearchConfig struct {
	Matcher string `yaml:"matcher"`
	TopK    int    `yaml:"top_k"`
}

// IndexConfig tunes how the catalog is encoded for the embedding matcher.
type IndexConfig struct {
	BatchSize  int           `yaml:"batch_size"`
	Workers    int           `yaml:"workers"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// AIConfig describes the OpenAI-compatible model endpoints. When Enabled is
// false no provider is created and only the lexical matcher is usable.
type AIConfig struct {
	Enabled        bool    `yaml:"enabled"`
	EmbeddingHost  string  `yaml:"embedding_host"`
	ChatHost       string  `yaml:"chat_host"`
	EmbeddingModel string  `yaml:"embedding_model"`
	ChatModel      string  `yaml:"chat_model"`
	APIKey         string  `yaml:"api_key"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used for omitted keys.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Data: DataConfig{Path: "course_data.json"},
		Search: SearchConfig{
			Matcher: string(search.KindLexical),
			TopK:    5,
		},
		Index: IndexConfig{
			BatchSize:  ingestion.DefaultBatchSize,
			Workers:    ingestion.DefaultWorkers,
			MaxRetries: ingestion.DefaultMaxRetries,
			RetryDelay: ingestion.DefaultRetryDelay,
		},
		AI: AIConfig{
			EmbeddingHost:  aiDefaults.EmbeddingHost,
			ChatHost:       aiDefaults.ChatHost,
			EmbeddingModel: aiDefaults.EmbeddingModel,
			ChatModel:      aiDefaults.ChatModel,
			APIKey:         aiDefaults.APIKey,
			Temperature:    aiDefaults.Temperature,
			MaxTokens:      aiDefaults.MaxTokens,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides and validates the result. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides values from COURSEFINDER_* variables. Setting an
// endpoint or key also enables AI.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvData); ok && v != "" {
		c.Data.Path = v
	}
	if v, ok := os.LookupEnv(EnvAPIKey); ok && v != "" {
		c.AI.APIKey = v
		c.AI.Enabled = true
	}
	if v, ok := os.LookupEnv(EnvEmbeddingHost); ok && v != "" {
		c.AI.EmbeddingHost = v
		c.AI.Enabled = true
	}
	if v, ok := os.LookupEnv(EnvChatHost); ok && v != "" {
		c.AI.ChatHost = v
		c.AI.Enabled = true
	}
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("%w: data.path is required", ErrInvalidConfig)
	}
	kind, err := search.ParseKind(c.Search.Matcher)
	if err != nil {
		return fmt.Errorf("%w: search.matcher: %w", ErrInvalidConfig, err)
	}
	if kind == search.KindEmbedding && !c.AI.Enabled {
		return fmt.Errorf("%w: the embedding matcher needs ai.enabled", ErrInvalidConfig)
	}
	if c.Search.TopK < 1 {
		return fmt.Errorf("%w: search.top_k must be positive", ErrInvalidConfig)
	}
	if c.Index.BatchSize < 1 || c.Index.Workers < 1 || c.Index.MaxRetries < 1 {
		return fmt.Errorf("%w: index sizes must be positive", ErrInvalidConfig)
	}
	if c.Index.RetryDelay < 0 {
		return fmt.Errorf("%w: index.retry_delay must not be negative", ErrInvalidConfig)
	}
	for _, origin := range c.Server.AllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return fmt.Errorf("%w: server.allowed_origins: %w", ErrInvalidConfig, err)
		}
	}
	if c.AI.Enabled {
		if err := c.ProviderConfig().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// validateOrigin accepts "*" or a literal http(s) origin. The CORS
// middleware panics on anything else.
func validateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}
	if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
		return fmt.Errorf("%q must start with http:// or https://", origin)
	}
	if strings.Contains(origin, "*") {
		return fmt.Errorf("%q: wildcards other than a lone \"*\" are not supported", origin)
	}
	return nil
}

// MatcherKind returns the configured matcher. Call after Validate.
func (c *Config) MatcherKind() search.Kind {
	kind, _ := search.ParseKind(c.Search.Matcher)
	return kind
}

// ProviderConfig converts the ai section to an ai.Config.
func (c *Config) ProviderConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithChatHost(c.AI.ChatHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithChatModel(c.AI.ChatModel),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithTemperature(c.AI.Temperature),
		ai.WithMaxTokens(c.AI.MaxTokens),
	)
}

// EncoderOptions converts the index section to ingestion options.
func (c *Config) EncoderOptions() []ingestion.Option {
	return []ingestion.Option{
		ingestion.WithBatchSize(c.Index.BatchSize),
		ingestion.WithWorkers(c.Index.Workers),
		ingestion.WithMaxRetries(c.Index.MaxRetries),
		ingestion.WithRetryDelay(c.Index.RetryDelay),
	}
}
