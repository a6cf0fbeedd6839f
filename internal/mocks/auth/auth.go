package auth

// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore      = (*MemorySessionStore)(nil)
	_ ports.CredentialDecoder = StaticDecoder{}
	_ ports.Navigator         = (*RecordingNavigator)(nil)
)

// MemorySessionStore is an in-memory session store for unit tests.
// It counts writes so tests can assert that a code path left the session alone.
type MemorySessionStore struct {
	mu     sync.Mutex
	sess   domainauth.Session
	sets   int
	clears int

	// GetErr, SetErr and ClearErr are returned by the matching method when set.
	GetErr   error
	SetErr   error
	ClearErr error
}

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// NewMemorySessionStoreWith creates a store already holding a session.
func NewMemorySessionStoreWith(credential string, role domainauth.Role) *MemorySessionStore {
	return &MemorySessionStore{sess: domainauth.NewSession(credential, role)}
}

func (m *MemorySessionStore) Get(_ context.Context) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return domainauth.Session{}, m.GetErr
	}
	return m.sess, nil
}

func (m *MemorySessionStore) Set(_ context.Context, credential string, role domainauth.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.sets++
	m.sess = domainauth.NewSession(credential, role)
	return nil
}

func (m *MemorySessionStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.clears++
	m.sess = domainauth.Session{}
	return nil
}

// Writes returns how many successful Set and Clear calls were made.
func (m *MemorySessionStore) Writes() (sets, clears int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets, m.clears
}

// StaticDecoder maps known credentials to roles; anything else is USER.
type StaticDecoder map[string]domainauth.Role

func (d StaticDecoder) DecodeRole(credential string) domainauth.Role {
	if r, ok := d[credential]; ok {
		return r
	}
	return domainauth.RoleUser
}

// RecordingNavigator records every navigation in order.
type RecordingNavigator struct {
	mu    sync.Mutex
	views []routing.View
	ch    chan routing.View
}

// NewRecordingNavigator creates a navigator. Navigations are also sent on
// Updates (buffered by size) so tests can wait for asynchronous ones.
func NewRecordingNavigator(buffer int) *RecordingNavigator {
	return &RecordingNavigator{ch: make(chan routing.View, buffer)}
}

func (n *RecordingNavigator) Navigate(view routing.View) {
	n.mu.Lock()
	n.views = append(n.views, view)
	n.mu.Unlock()

	if n.ch == nil {
		return
	}
	select {
	case n.ch <- view:
	default:
	}
}

// Updates delivers navigations as they happen.
func (n *RecordingNavigator) Updates() <-chan routing.View { return n.ch }

// Views returns a copy of all recorded navigations.
func (n *RecordingNavigator) Views() []routing.View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]routing.View(nil), n.views...)
}

// Last returns the most recent navigation, or "" when none happened.
func (n *RecordingNavigator) Last() routing.View {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.views) == 0 {
		return ""
	}
	return n.views[len(n.views)-1]
}

// Count returns how many times view was navigated to.
func (n *RecordingNavigator) Count(view routing.View) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, v := range n.views {
		if v == view {
			c++
		}
	}
	return c
}
