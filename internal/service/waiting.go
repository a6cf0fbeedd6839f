package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Vinothdevgit/voting-client/internal/domain/countdown"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// WaitingCoordinatorOptions groups dependencies for WaitingCoordinator.
type WaitingCoordinatorOptions struct {
	Clock     ports.Clock // Required
	Seconds   int         // Defaults to countdown.DefaultSeconds
	Telemetry Telemetry
}

// WaitingCoordinator runs the post-vote countdown and then sends the client
// to the results view.
type WaitingCoordinator struct {
	clock   ports.Clock
	seconds int
	logger  *slog.Logger
}

// NewWaitingCoordinator constructs a new WaitingCoordinator.
func NewWaitingCoordinator(opts WaitingCoordinatorOptions) *WaitingCoordinator {
	if opts.Clock == nil {
		panic("Clock is required")
	}
	seconds := opts.Seconds
	if seconds <= 0 {
		seconds = countdown.DefaultSeconds
	}
	return &WaitingCoordinator{
		clock:   opts.Clock,
		seconds: seconds,
		logger:  opts.Telemetry.logger("waiting"),
	}
}

// Seconds is the configured countdown length.
func (w *WaitingCoordinator) Seconds() int { return w.seconds }

// Start begins a countdown. onTick, if set, sees every state after a tick.
// When the countdown reaches Done, nav is sent to the results view exactly
// once. Callbacks run on the countdown goroutine and must not call Cancel.
func (w *WaitingCoordinator) Start(nav ports.Navigator, onTick func(countdown.State)) *Countdown {
	c := &Countdown{
		state:  countdown.Start(w.seconds),
		ticker: w.clock.NewTicker(TickInterval),
		stop:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go c.run(nav, onTick, w.logger)
	return c
}

// Countdown is a running countdown handle.
type Countdown struct {
	ticker ports.Ticker

	mu       sync.Mutex
	state    countdown.State
	finished bool

	stopOnce sync.Once
	stop     chan struct{}
	exited   chan struct{}
}

func (c *Countdown) run(nav ports.Navigator, onTick func(countdown.State), logger *slog.Logger) {
	defer close(c.exited)
	defer c.ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-c.ticker.C():
		}

		c.mu.Lock()
		c.state = c.state.Tick()
		st := c.state
		c.mu.Unlock()

		select {
		case <-c.stop:
			return
		default:
		}

		if onTick != nil {
			onTick(st)
		}
		if st.Done() {
			c.mu.Lock()
			c.finished = true
			c.mu.Unlock()
			logger.Debug("countdown finished")
			if nav != nil {
				nav.Navigate(routing.ViewResults)
			}
			return
		}
	}
}

// State is the current countdown state.
func (c *Countdown) State() countdown.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Finished reports whether the countdown ran to Done.
func (c *Countdown) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

// Done is closed once the countdown goroutine has exited, whether it
// finished or was cancelled.
func (c *Countdown) Done() <-chan struct{} { return c.exited }

// Cancel stops the countdown and waits for its goroutine to exit. After
// Cancel returns no further tick or navigation happens. Safe to call more
// than once and after the countdown finished.
func (c *Countdown) Cancel() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.exited
}
