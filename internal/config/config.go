package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	LLM    LLMConfig
	Queue  QueueConfig
	Parser ParserConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ModelProviderConfig holds settings for a single LLM provider. Models lists
// the catalog ids served by this provider.
type ModelProviderConfig struct {
	Endpoint    string   `mapstructure:"endpoint"`
	APIKey      string   `mapstructure:"api_key"`
	Models      []string `mapstructure:"models"`
	TimeoutSecs int      `mapstructure:"timeout_secs"`
}

// LLMConfig holds the language-model catalog settings.
type LLMConfig struct {
	DefaultModel string              `mapstructure:"default_model"`
	Ollama       ModelProviderConfig `mapstructure:"ollama"`
	OpenAI       ModelProviderConfig `mapstructure:"openai"`
	Anthropic    ModelProviderConfig `mapstructure:"anthropic"`
}

// QueueConfig holds parse queue worker settings. Enabled=false selects the
// synchronous in-process execution path.
type QueueConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	PollIntervalSecs int  `mapstructure:"poll_interval_secs"`
	MaxAttempts      int  `mapstructure:"max_attempts"`
	Concurrency      int  `mapstructure:"concurrency"`
}

// ParserConfig holds pipeline-level settings.
type ParserConfig struct {
	MaxStoredTextChars int `mapstructure:"max_stored_text_chars"`
}

// Load reads configuration from environment variables with the ITINERA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ITINERA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "itinera")
	v.SetDefault("db.password", "itinera_secret")
	v.SetDefault("db.name", "itinera_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// LLM defaults
	v.SetDefault("llm.default_model", "ollama-qwen3-32b")
	v.SetDefault("llm.ollama.endpoint", "http://localhost:11434")
	v.SetDefault("llm.ollama.models", "ollama-qwen3-32b")
	v.SetDefault("llm.ollama.timeout_secs", 300)
	v.SetDefault("llm.openai.endpoint", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.models", "")
	v.SetDefault("llm.openai.timeout_secs", 120)
	v.SetDefault("llm.anthropic.endpoint", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.models", "")
	v.SetDefault("llm.anthropic.timeout_secs", 120)

	// Queue defaults
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("queue.concurrency", 5)

	// Parser defaults
	v.SetDefault("parser.max_stored_text_chars", 50000)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
