// Package workflow is the voting workflow as an explicit state machine.
// It holds no I/O; the service layer performs the side effects that
// accompany each transition.
package workflow

import "fmt"

// Phase is where a client is in the voting workflow.
type Phase int

const (
	SignedOut Phase = iota
	Browsing
	Submitting
	Waiting
	VoteClosed
)

var phaseNames = [...]string{"SignedOut", "Browsing", "Submitting", "Waiting", "VoteClosed"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Event drives a transition.
type Event int

const (
	LoginSucceeded Event = iota
	LoginFailed
	Logout
	Navigate
	SubmitStarted
	VoteAccepted
	VoteDuplicate
	VoteFailed
	CountdownDone
)

var eventNames = [...]string{
	"LoginSucceeded", "LoginFailed", "Logout", "Navigate", "SubmitStarted",
	"VoteAccepted", "VoteDuplicate", "VoteFailed", "CountdownDone",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

type key struct {
	from Phase
	on   Event
}

var transitions = map[key]Phase{
	{SignedOut, LoginSucceeded}: Browsing,
	{SignedOut, LoginFailed}:    SignedOut,
	{SignedOut, Navigate}:       SignedOut,
	{SignedOut, Logout}:         SignedOut,

	{Browsing, Navigate}:       Browsing,
	{Browsing, SubmitStarted}:  Submitting,
	{Browsing, LoginSucceeded}: Browsing,
	{Browsing, LoginFailed}:    Browsing,
	{Browsing, Logout}:         SignedOut,

	{Submitting, VoteAccepted}:  Waiting,
	{Submitting, VoteDuplicate}: VoteClosed,
	{Submitting, VoteFailed}:    Browsing,
	{Submitting, Logout}:        SignedOut,

	{Waiting, CountdownDone}: VoteClosed,
	{Waiting, Navigate}:      VoteClosed,
	{Waiting, Logout}:        SignedOut,

	{VoteClosed, Navigate}:       VoteClosed,
	{VoteClosed, LoginSucceeded}: Browsing,
	{VoteClosed, LoginFailed}:    VoteClosed,
	{VoteClosed, Logout}:         SignedOut,
}

// ErrInvalidTransition reports an event that is not allowed in a phase.
type ErrInvalidTransition struct {
	From  Phase
	Event Event
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("%s is not allowed while %s", e.Event, e.From)
}

// Next returns the phase reached from p on e.
func Next(p Phase, e Event) (Phase, error) {
	to, ok := transitions[key{p, e}]
	if !ok {
		return p, &ErrInvalidTransition{From: p, Event: e}
	}
	return to, nil
}

// Allowed reports whether e is accepted in p.
func Allowed(p Phase, e Event) bool {
	_, ok := transitions[key{p, e}]
	return ok
}

// LeavesWaiting reports whether taking e from p abandons a running countdown.
func LeavesWaiting(p Phase, e Event) bool {
	return p == Waiting && e != CountdownDone && Allowed(p, e)
}
