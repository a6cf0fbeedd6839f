package testutil

import (
	"sync"
	"time"

	"github.com/Vinothdevgit/voting-client/internal/ports"
)

var _ ports.Clock = (*ManualClock)(nil)

// ManualClock is a ports.Clock whose tickers only fire when the test says so.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*ManualTicker
	created chan *ManualTicker
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start, created: make(chan *ManualTicker, 16)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NewTicker returns a ticker with an unbuffered channel, so a Fire only
// succeeds while a receiver is actually waiting on it.
func (c *ManualClock) NewTicker(d time.Duration) ports.Ticker {
	tk := &ManualTicker{clock: c, period: d, ch: make(chan time.Time), stopped: make(chan struct{})}
	c.mu.Lock()
	c.tickers = append(c.tickers, tk)
	c.mu.Unlock()

	select {
	case c.created <- tk:
	default:
	}
	return tk
}

// WaitTicker blocks until a ticker has been created or timeout elapses.
func (c *ManualClock) WaitTicker(t TestingTB, timeout time.Duration) *ManualTicker {
	t.Helper()
	select {
	case tk := <-c.created:
		return tk
	case <-time.After(timeout):
		t.Fatalf("no ticker created within %s", timeout)
		return nil
	}
}

// Tickers returns every ticker created so far.
func (c *ManualClock) Tickers() []*ManualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*ManualTicker(nil), c.tickers...)
}

func (c *ManualClock) advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// ManualTicker is the ports.Ticker handed out by ManualClock.
type ManualTicker struct {
	clock    *ManualClock
	period   time.Duration
	ch       chan time.Time
	stopOnce sync.Once
	stopped  chan struct{}
}

func (tk *ManualTicker) C() <-chan time.Time { return tk.ch }

func (tk *ManualTicker) Stop() {
	tk.stopOnce.Do(func() { close(tk.stopped) })
}

// Stopped reports whether Stop has been called.
func (tk *ManualTicker) Stopped() bool {
	select {
	case <-tk.stopped:
		return true
	default:
		return false
	}
}

// Fire advances the clock by one period and delivers the tick, waiting up
// to timeout for a receiver. It reports whether the tick was received.
func (tk *ManualTicker) Fire(timeout time.Duration) bool {
	now := tk.clock.advance(tk.period)
	select {
	case tk.ch <- now:
		return true
	case <-tk.stopped:
		return false
	case <-time.After(timeout):
		return false
	}
}

// TryFire delivers a tick only if a receiver is waiting right now.
func (tk *ManualTicker) TryFire() bool {
	select {
	case tk.ch <- tk.clock.Now():
		return true
	default:
		return false
	}
}
