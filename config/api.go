package config

import (
	"strings"
	"time"
)

const (
	defaultAPITimeout = 10 * time.Second
	maxAPITimeout     = 2 * time.Minute
)

// APIConfig contains election server connection settings.
type APIConfig struct {
	BaseURL   string        `env:"BALLOT_API_BASE_URL"   envDefault:"http://localhost:8080"`
	Timeout   time.Duration `env:"BALLOT_API_TIMEOUT"    envDefault:"10s"`
	UserAgent string        `env:"BALLOT_API_USER_AGENT" envDefault:"ballot-cli"`
}

// Sanitize trims the base URL and clamps the request timeout.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	if c.Timeout <= 0 {
		c.Timeout = defaultAPITimeout
	}
	if c.Timeout > maxAPITimeout {
		c.Timeout = maxAPITimeout
	}
}
