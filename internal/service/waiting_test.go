package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinothdevgit/voting-client/internal/domain/countdown"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	mockauth "github.com/Vinothdevgit/voting-client/internal/mocks/auth"
	"github.com/Vinothdevgit/voting-client/internal/testutil"
)

const fireTimeout = time.Second

type tickLog struct {
	mu     sync.Mutex
	states []countdown.State
}

func (l *tickLog) record(s countdown.State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states = append(l.states, s)
}

func (l *tickLog) all() []countdown.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]countdown.State(nil), l.states...)
}

func waitExited(t *testing.T, c *Countdown) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(fireTimeout):
		t.Fatal("countdown goroutine did not exit")
	}
}

func TestWaitingCoordinator_ThirtyTicksNavigateOnce(t *testing.T) {
	clock := testutil.NewManualClock(testutil.TestTime())
	nav := mockauth.NewRecordingNavigator(4)
	w := NewWaitingCoordinator(WaitingCoordinatorOptions{Clock: clock})
	require.Equal(t, countdown.DefaultSeconds, w.Seconds())

	var ticks tickLog
	c := w.Start(nav, ticks.record)
	tk := clock.WaitTicker(t, fireTimeout)

	for i := 0; i < countdown.DefaultSeconds; i++ {
		require.True(t, tk.Fire(fireTimeout), "tick %d not received", i+1)
	}
	waitExited(t, c)

	assert.True(t, c.Finished())
	assert.True(t, c.State().Done())
	assert.Equal(t, []routing.View{routing.ViewResults}, nav.Views())
	assert.Len(t, ticks.all(), countdown.DefaultSeconds)
	assert.Equal(t, 29, ticks.all()[0].Remaining())
	assert.True(t, tk.Stopped())
	assert.False(t, tk.TryFire())

	c.Cancel()
	assert.Equal(t, 1, nav.Count(routing.ViewResults))
}

func TestWaitingCoordinator_CancelAfterFiveTicks(t *testing.T) {
	clock := testutil.NewManualClock(testutil.TestTime())
	nav := mockauth.NewRecordingNavigator(4)
	w := NewWaitingCoordinator(WaitingCoordinatorOptions{Clock: clock})

	var ticks tickLog
	c := w.Start(nav, ticks.record)
	tk := clock.WaitTicker(t, fireTimeout)

	for i := 0; i < 5; i++ {
		require.True(t, tk.Fire(fireTimeout))
	}
	c.Cancel()
	seen := len(ticks.all())

	assert.False(t, tk.TryFire())
	assert.False(t, tk.Fire(10*time.Millisecond))
	assert.Equal(t, 25, c.State().Remaining())
	assert.False(t, c.Finished())
	assert.Empty(t, nav.Views())
	assert.Equal(t, seen, len(ticks.all()))
	assert.LessOrEqual(t, seen, 5)

	c.Cancel()
}

func TestWaitingCoordinator_CustomLength(t *testing.T) {
	clock := testutil.NewManualClock(testutil.TestTime())
	nav := mockauth.NewRecordingNavigator(1)
	w := NewWaitingCoordinator(WaitingCoordinatorOptions{Clock: clock, Seconds: 2})

	c := w.Start(nav, nil)
	tk := clock.WaitTicker(t, fireTimeout)
	require.True(t, tk.Fire(fireTimeout))
	require.True(t, tk.Fire(fireTimeout))

	select {
	case v := <-nav.Updates():
		assert.Equal(t, routing.ViewResults, v)
	case <-time.After(fireTimeout):
		t.Fatal("no navigation")
	}
	waitExited(t, c)
}
