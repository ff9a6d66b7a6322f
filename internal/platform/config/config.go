// Package config loads service configuration from the environment so main
// stays lean. Provider credentials are optional: a verifier whose credential
// is missing reports a configuration failure result instead of crashing.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures all environment-driven settings for the Pulse service.
type Config struct {
	Addr          string        `env:"PULSE_ADDR" envDefault:":8080"`
	JWTSigningKey string        `env:"PULSE_JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	TokenTTL      time.Duration `env:"PULSE_TOKEN_TTL" envDefault:"24h"`

	// Outbound provider APIs.
	GitHubToken        string        `env:"PULSE_GITHUB_TOKEN"`
	TwitterBearerToken string        `env:"PULSE_TWITTER_BEARER_TOKEN"`
	NeynarAPIKey       string        `env:"PULSE_NEYNAR_API_KEY"`
	LensEndpoint       string        `env:"PULSE_LENS_ENDPOINT" envDefault:"https://api-v2.lens.dev"`
	HTTPTimeout        time.Duration `env:"PULSE_HTTP_TIMEOUT" envDefault:"10s"`

	// Identity wallet used for credential issuance. When WalletBaseURL is
	// empty the service runs with the local fallback store only.
	WalletBaseURL string `env:"PULSE_WALLET_URL"`
	WalletAPIKey  string `env:"PULSE_WALLET_API_KEY"`

	// Storage. Empty RedisAddr selects the in-memory stores.
	RedisAddr     string `env:"PULSE_REDIS_ADDR"`
	RedisPassword string `env:"PULSE_REDIS_PASSWORD"`

	MaxAttemptsPerDay int           `env:"PULSE_MAX_ATTEMPTS_PER_DAY" envDefault:"3"`
	ProfileCacheTTL   time.Duration `env:"PULSE_PROFILE_CACHE_TTL" envDefault:"5m"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}
