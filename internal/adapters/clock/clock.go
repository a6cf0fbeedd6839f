// Package clock provides the wall-clock implementation of ports.Clock.
package clock

import (
	"time"

	"github.com/Vinothdevgit/voting-client/internal/ports"
)

var _ ports.Clock = Real{}

// Real uses the system clock.
type Real struct{}

// Now returns the current system time.
func (Real) Now() time.Time { return time.Now() }

// NewTicker starts a time.Ticker with period d.
func (Real) NewTicker(d time.Duration) ports.Ticker {
	return &ticker{t: time.NewTicker(d)}
}

type ticker struct {
	t *time.Ticker
}

func (t *ticker) C() <-chan time.Time { return t.t.C }
func (t *ticker) Stop()               { t.t.Stop() }
