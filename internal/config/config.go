package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Env     string `envconfig:"APP_ENV" default:"development"`
	Port    int    `envconfig:"APP_PORT" default:"8080"`
	DB      DBConfig
	CORS    CORSConfig
	JWT     JWTConfig
	OpenAI  OpenAIConfig
	Gmail   GmailConfig
	Webhook WebhookConfig
}

// database configuration
type DBConfig struct {
	DSN string `envconfig:"DATABASE_URL" required:"true"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// JWT configuration for the identity layer
type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" required:"true"`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

// OpenAI chat-completion configuration
type OpenAIConfig struct {
	APIKey string `envconfig:"OPENAI_API_KEY" required:"true"`
	Model  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
}

// Gmail push-notification configuration
type GmailConfig struct {
	CredentialsFile string `envconfig:"GMAIL_CREDENTIALS_FILE" default:"credentials.json"`
	TokenFile       string `envconfig:"GMAIL_TOKEN_FILE" default:"token.json"`
	ProjectID       string `envconfig:"PUBSUB_PROJECT_ID"`
	TopicID         string `envconfig:"PUBSUB_TOPIC_ID" default:"ApplicationTracking"`
}

// Webhook process configuration
type WebhookConfig struct {
	Port         int           `envconfig:"WEBHOOK_PORT" default:"8080"`
	SyncInterval time.Duration `envconfig:"SYNC_INTERVAL" default:"15m"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if c.Webhook.Port < 1 || c.Webhook.Port > 65535 {
		return fmt.Errorf("invalid webhook port: %d (must be between 1 and 65535)", c.Webhook.Port)
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Webhook.SyncInterval < time.Minute {
		return fmt.Errorf("SYNC_INTERVAL must be at least 1m")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) WebhookAddr() string {
	return fmt.Sprintf(":%d", c.Webhook.Port)
}

// TopicName is the fully-qualified Pub/Sub topic the Gmail watch publishes to.
func (c *Config) TopicName() string {
	return fmt.Sprintf("projects/%s/topics/%s", c.Gmail.ProjectID, c.Gmail.TopicID)
}

// CORSOrigins returns the trimmed, non-empty trusted origins.
func (c *Config) CORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
