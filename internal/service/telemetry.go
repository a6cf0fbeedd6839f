package service

import (
	"log/slog"

	"github.com/Vinothdevgit/voting-client/internal/observability/statsd"
)

// Telemetry groups the optional observability dependencies shared by services.
type Telemetry struct {
	Logger  *slog.Logger
	Metrics statsd.Sink
}

func (t Telemetry) logger(component string) *slog.Logger {
	l := t.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", component)
}
