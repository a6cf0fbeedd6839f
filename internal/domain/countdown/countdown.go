// Package countdown models the post-vote waiting period as a small state
// machine: Counting(n) for n > 0, then Done.
package countdown

import "fmt"

// DefaultSeconds is the waiting period before results are shown.
const DefaultSeconds = 30

// ClosingThreshold is how many remaining seconds count as "closing".
const ClosingThreshold = 3

// State is an immutable countdown state. The zero value is Done.
type State struct {
	remaining int
}

// Start returns Counting(seconds). A non-positive duration starts Done.
func Start(seconds int) State {
	if seconds < 0 {
		seconds = 0
	}
	return State{remaining: seconds}
}

// Tick advances one second. Counting(1) resolves straight to Done; Done is
// absorbing.
func (s State) Tick() State {
	if s.remaining <= 0 {
		return s
	}
	return State{remaining: s.remaining - 1}
}

// Done reports whether the countdown has finished.
func (s State) Done() bool { return s.remaining <= 0 }

// Remaining is the number of seconds left; 0 once Done.
func (s State) Remaining() int { return s.remaining }

// Closing reports whether the countdown is in its last few seconds.
func (s State) Closing() bool {
	return !s.Done() && s.remaining <= ClosingThreshold
}

// Display renders the remaining time as m:ss.
func (s State) Display() string {
	return fmt.Sprintf("%d:%02d", s.remaining/60, s.remaining%60)
}

func (s State) String() string {
	if s.Done() {
		return "Done"
	}
	return fmt.Sprintf("Counting(%d)", s.remaining)
}
