// Package config holds the tunables the safety gate core leaves external:
// where the database lives, how to reach the scoring backend, and the
// scheduling parameters around threshold suggestions.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	// DatabasePath is where the settings and audit database lives
	// Default: .draftguard/draftguard.db
	DatabasePath string `yaml:"database_path"`

	// ScorerURL is the base URL of the perplexity scoring backend
	// Default: http://127.0.0.1:8791
	ScorerURL string `yaml:"scorer_url"`

	// ScorerTimeout bounds one scoring call; on expiry the gate passes
	// Default: 10s
	ScorerTimeout time.Duration `yaml:"scorer_timeout"`

	// SuggestionCooldown is how long a dismissed threshold suggestion
	// stays suppressed before the same condition may fire again
	// Default: 168h (7 days)
	SuggestionCooldown time.Duration `yaml:"suggestion_cooldown"`
}

// DefaultConfig returns default application configuration
func DefaultConfig() *Config {
	return &Config{
		DatabasePath:       ".draftguard/draftguard.db",
		ScorerURL:          "http://127.0.0.1:8791",
		ScorerTimeout:      10 * time.Second,
		SuggestionCooldown: 7 * 24 * time.Hour,
	}
}

// Load reads configuration from a YAML file, overlaying the defaults.
// A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv applies environment variable overrides.
// Prefix: DRAFTGUARD_
func (c *Config) applyEnv() {
	if val := os.Getenv("DRAFTGUARD_DB"); val != "" {
		c.DatabasePath = val
	}
	if val := os.Getenv("DRAFTGUARD_SCORER_URL"); val != "" {
		c.ScorerURL = val
	}
	if val := os.Getenv("DRAFTGUARD_SUGGESTION_COOLDOWN"); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			c.SuggestionCooldown = d
		}
	}
}

func (c *Config) validate() error {
	if c.ScorerTimeout < 0 {
		return fmt.Errorf("scorer_timeout cannot be negative")
	}
	if c.SuggestionCooldown < 0 {
		return fmt.Errorf("suggestion_cooldown cannot be negative")
	}
	return nil
}
