package config

import (
	"fmt"
	"time"
)

// JWTConfig holds configuration for verifying bearer tokens issued by the
// auth service.
type JWTConfig struct {
	Secret          string
	Issuer          string        // Required iss claim; empty accepts any issuer
	Leeway          time.Duration // Allowed clock skew
	ExpirationHours int           // Lifetime of tokens minted for local development
}

// NewJWTConfig builds a JWT configuration. It returns nil, nil when secret
// is empty, which disables token verification.
func NewJWTConfig(secret, issuer string) (*JWTConfig, error) {
	if secret == "" {
		return nil, nil
	}

	cfg := &JWTConfig{
		Secret:          secret,
		Issuer:          issuer,
		Leeway:          30 * time.Second,
		ExpirationHours: 24,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// JWT returns the token verification config, or nil when auth is disabled.
func (c *Config) JWT() (*JWTConfig, error) {
	return NewJWTConfig(c.JWTSecret, "")
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT expiration must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	if c.Leeway < 0 {
		return fmt.Errorf("JWT leeway must be non-negative")
	}
	return nil
}
