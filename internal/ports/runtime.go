package ports

import (
	"time"

	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
)

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock abstracts wall time so countdowns can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Navigator receives route changes. It is the only externally observable
// output of the workflow.
type Navigator interface {
	Navigate(view routing.View)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(view routing.View)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(view routing.View) { f(view) }
