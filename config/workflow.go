package config

import "strings"

const (
	defaultWaitSeconds = 30
	maxWaitSeconds     = 600
	defaultRoleClaim   = "authorities[0]"
)

// WorkflowConfig controls the voting workflow.
type WorkflowConfig struct {
	// WaitSeconds is the length of the post-vote countdown.
	WaitSeconds int `env:"BALLOT_WAIT_SECONDS" envDefault:"30"`
	// RoleClaim is a JMESPath expression selecting the role from the token claims.
	RoleClaim string `env:"BALLOT_ROLE_CLAIM" envDefault:"authorities[0]"`
}

// Sanitize clamps the countdown and restores the default role claim.
func (c *WorkflowConfig) Sanitize() {
	if c.WaitSeconds <= 0 {
		c.WaitSeconds = defaultWaitSeconds
	}
	if c.WaitSeconds > maxWaitSeconds {
		c.WaitSeconds = maxWaitSeconds
	}
	c.RoleClaim = strings.TrimSpace(c.RoleClaim)
	if c.RoleClaim == "" {
		c.RoleClaim = defaultRoleClaim
	}
}
