package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/countdown"
	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	"github.com/Vinothdevgit/voting-client/internal/domain/workflow"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

type loginFlow interface {
	Login(ctx context.Context, in election.Credentials) (domainauth.Session, error)
	Logout(ctx context.Context) error
}

type ballotCaster interface {
	Submit(ctx context.Context, id election.CandidateID) (election.Outcome, error)
}

type countdownStarter interface {
	Start(nav ports.Navigator, onTick func(countdown.State)) *Countdown
}

// WorkflowFlows are the services the controller drives.
type WorkflowFlows struct {
	Auth    loginFlow        // Required
	Votes   ballotCaster     // Required
	Waiting countdownStarter // Required
}

// ControllerOptions groups dependencies for Controller.
type ControllerOptions struct {
	Flows     WorkflowFlows
	Sessions  ports.SessionReader // Required
	Navigator ports.Navigator     // Required
	// OnTick receives countdown updates while waiting. Optional.
	OnTick    func(countdown.State)
	Telemetry Telemetry
}

// Controller runs the voting workflow state machine and performs the side
// effects of each transition. State changes are serialised; network calls
// happen outside the lock.
type Controller struct {
	auth     loginFlow
	votes    ballotCaster
	waiting  countdownStarter
	sessions ports.SessionReader
	nav      ports.Navigator
	onTick   func(countdown.State)
	logger   *slog.Logger

	mu        sync.Mutex
	phase     workflow.Phase
	view      routing.View
	countdown *Countdown
	// gen invalidates callbacks from a countdown the controller has abandoned.
	gen uint64
}

// NewController constructs a Controller in the SignedOut phase.
func NewController(opts ControllerOptions) *Controller {
	switch {
	case opts.Flows.Auth == nil:
		panic("auth flow is required")
	case opts.Flows.Votes == nil:
		panic("vote flow is required")
	case opts.Flows.Waiting == nil:
		panic("waiting coordinator is required")
	case opts.Sessions == nil:
		panic("SessionReader is required")
	case opts.Navigator == nil:
		panic("Navigator is required")
	}
	return &Controller{
		auth:     opts.Flows.Auth,
		votes:    opts.Flows.Votes,
		waiting:  opts.Flows.Waiting,
		sessions: opts.Sessions,
		nav:      opts.Navigator,
		onTick:   opts.OnTick,
		logger:   opts.Telemetry.logger("workflow"),
		phase:    workflow.SignedOut,
		view:     routing.ViewLogin,
	}
}

// Phase is the current workflow phase.
func (c *Controller) Phase() workflow.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// View is the last view the controller navigated to.
func (c *Controller) View() routing.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Countdown returns the running or last finished countdown, or nil.
func (c *Controller) Countdown() *Countdown {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown
}

// Restore picks up a session persisted by an earlier run and lands on the
// session's home view.
func (c *Controller) Restore(ctx context.Context) (routing.View, error) {
	sess, err := c.sessions.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("restore session: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if sess.Authenticated() && c.phase == workflow.SignedOut {
		if err := c.applyLocked(workflow.LoginSucceeded); err != nil {
			return "", err
		}
	}
	home := routing.Home(sess)
	c.navigateLocked(home)
	return home, nil
}

// Login signs in and navigates to the role's home view. A failed login
// leaves the phase and the stored session unchanged.
func (c *Controller) Login(ctx context.Context, in election.Credentials) (domainauth.Session, error) {
	if err := c.check(workflow.LoginSucceeded); err != nil {
		return domainauth.Session{}, err
	}

	sess, loginErr := c.auth.Login(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if loginErr != nil {
		if err := c.applyLocked(workflow.LoginFailed); err != nil {
			c.logger.Warn("login failure arrived in an unexpected phase", "error", err)
		}
		return domainauth.Session{}, loginErr
	}
	if err := c.applyLocked(workflow.LoginSucceeded); err != nil {
		return sess, err
	}
	c.navigateLocked(routing.Resolve(sess, routing.LandingPath(sess)).View)
	return sess, nil
}

// Logout clears the session, abandons any countdown and navigates to login.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	stale := c.abandonLocked(workflow.Logout)
	err := c.applyLocked(workflow.Logout)
	c.mu.Unlock()

	if stale != nil {
		stale.Cancel()
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.navigateLocked(routing.ViewLogin)
	c.mu.Unlock()
	return nil
}

// Navigate resolves path for the current session and moves there.
func (c *Controller) Navigate(ctx context.Context, path string) (routing.Decision, error) {
	sess, err := c.sessions.Get(ctx)
	if err != nil {
		return routing.Decision{}, fmt.Errorf("read session: %w", err)
	}
	d := routing.Resolve(sess, path)

	c.mu.Lock()
	if d.View == routing.ViewWaiting && c.phase != workflow.Waiting {
		// The waiting view exists only while a countdown runs.
		d.View = routing.Home(sess)
		d.Redirected = true
	}
	var stale *Countdown
	switch {
	case !sess.Authenticated() && c.phase != workflow.SignedOut:
		stale = c.abandonLocked(workflow.Logout)
		err = c.applyLocked(workflow.Logout)
	case c.phase == workflow.Waiting && d.View == routing.ViewWaiting:
		// Already there.
	default:
		stale = c.abandonLocked(workflow.Navigate)
		err = c.applyLocked(workflow.Navigate)
	}
	c.mu.Unlock()

	if stale != nil {
		stale.Cancel()
	}
	if err != nil {
		return routing.Decision{}, err
	}

	c.mu.Lock()
	c.navigateLocked(d.View)
	c.mu.Unlock()
	return d, nil
}

// Vote submits the ballot. An accepted vote moves to the waiting view and
// starts the countdown; a duplicate closes voting without navigating; any
// other failure returns to browsing so the user can try again.
func (c *Controller) Vote(ctx context.Context, id election.CandidateID) (election.Outcome, error) {
	c.mu.Lock()
	err := c.applyLocked(workflow.SubmitStarted)
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}

	outcome, voteErr := c.votes.Submit(ctx, id)

	ev := workflow.VoteFailed
	switch outcome {
	case election.OutcomeAccepted:
		ev = workflow.VoteAccepted
	case election.OutcomeDuplicate:
		ev = workflow.VoteDuplicate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.applyLocked(ev); err != nil {
		// The workflow moved on while the request was in flight (e.g. logout).
		c.logger.Warn("vote outcome arrived in an unexpected phase", "outcome", outcome, "error", err)
		return outcome, voteErr
	}
	if ev == workflow.VoteAccepted {
		c.navigateLocked(routing.ViewWaiting)
		c.gen++
		c.countdown = c.waiting.Start(c.countdownNavigator(c.gen), c.onTick)
	}
	return outcome, voteErr
}

// Close cancels a running countdown and waits for it to stop.
func (c *Controller) Close() {
	c.mu.Lock()
	stale := c.countdown
	c.gen++
	c.mu.Unlock()
	if stale != nil {
		stale.Cancel()
	}
}

func (c *Controller) check(ev workflow.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !workflow.Allowed(c.phase, ev) {
		return &workflow.ErrInvalidTransition{From: c.phase, Event: ev}
	}
	return nil
}

func (c *Controller) applyLocked(ev workflow.Event) error {
	next, err := workflow.Next(c.phase, ev)
	if err != nil {
		return err
	}
	if next != c.phase {
		c.logger.Debug("workflow transition", "from", c.phase, "to", next, "event", ev)
	}
	c.phase = next
	return nil
}

// abandonLocked detaches the running countdown when ev leaves Waiting. The
// caller cancels the returned handle after releasing the lock.
func (c *Controller) abandonLocked(ev workflow.Event) *Countdown {
	if !workflow.LeavesWaiting(c.phase, ev) || c.countdown == nil {
		return nil
	}
	stale := c.countdown
	c.gen++
	return stale
}

func (c *Controller) navigateLocked(v routing.View) {
	c.view = v
	c.nav.Navigate(v)
}

func (c *Controller) countdownNavigator(gen uint64) ports.Navigator {
	return ports.NavigatorFunc(func(v routing.View) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != gen || c.phase != workflow.Waiting {
			return
		}
		if err := c.applyLocked(workflow.CountdownDone); err != nil {
			c.logger.Warn("countdown finished in an unexpected phase", "error", err)
			return
		}
		c.navigateLocked(v)
	})
}
