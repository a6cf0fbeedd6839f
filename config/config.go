package config

// AppConfig is the main configuration struct for the ballot client. It
// composes domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library:
//   - api.go: election server connection
//   - session.go: where the session survives between invocations
//   - workflow.go: countdown length and role claim
//   - observability.go: logging and metrics
type AppConfig struct {
	API           APIConfig
	Session       SessionConfig
	Workflow      WorkflowConfig
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Session.Sanitize()
	c.Workflow.Sanitize()
	c.Observability.Sanitize()
}
