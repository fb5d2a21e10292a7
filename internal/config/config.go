package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"negar/internal/utils"
)

// Config is the process configuration, loaded from the environment
// with a NEGAR_ prefix. Provider API keys keep their conventional
// unprefixed names.
type Config struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	DBPath         string        `envconfig:"DB_PATH"`
	Provider       string        `envconfig:"PROVIDER" default:"openai"`
	GeneratorModel string        `envconfig:"GENERATOR_MODEL" default:"gpt-4o"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	EnableImages   bool          `envconfig:"ENABLE_IMAGES" default:"true"`

	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY"`
}

// Load reads a .env file when one exists, then resolves the
// configuration from the environment.
func Load() (*Config, error) {
	_ = utils.LoadEnv()

	var cfg Config
	if err := envconfig.Process("negar", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// GeneratorAPIKey returns the key matching the configured provider.
func (c *Config) GeneratorAPIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "gemini":
		return c.GeminiAPIKey
	default:
		return c.OpenAIAPIKey
	}
}
