package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
)

func TestMemorySessionStore_SetGetClear(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	s, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	require.NoError(t, store.Set(ctx, "tok", domainauth.RoleAdmin))
	s, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domainauth.NewSession("tok", domainauth.RoleAdmin), s)

	require.NoError(t, store.Clear(ctx))
	s, _ = store.Get(ctx)
	assert.Equal(t, domainauth.Session{}, s)

	sets, clears := store.Writes()
	assert.Equal(t, 1, sets)
	assert.Equal(t, 1, clears)
}

func TestMemorySessionStore_InjectedErrors(t *testing.T) {
	boom := errors.New("boom")
	store := NewMemorySessionStoreWith("tok", domainauth.RoleUser)
	store.SetErr = boom

	require.ErrorIs(t, store.Set(context.Background(), "other", domainauth.RoleAdmin), boom)
	s, _ := store.Get(context.Background())
	assert.Equal(t, "tok", s.Credential)

	sets, _ := store.Writes()
	assert.Zero(t, sets)
}

func TestStaticDecoder(t *testing.T) {
	d := StaticDecoder{"admin-token": domainauth.RoleAdmin}
	assert.Equal(t, domainauth.RoleAdmin, d.DecodeRole("admin-token"))
	assert.Equal(t, domainauth.RoleUser, d.DecodeRole("anything"))
}

func TestRecordingNavigator(t *testing.T) {
	n := NewRecordingNavigator(4)
	assert.Equal(t, routing.View(""), n.Last())

	n.Navigate(routing.ViewVoting)
	n.Navigate(routing.ViewWaiting)
	n.Navigate(routing.ViewWaiting)

	assert.Equal(t, []routing.View{routing.ViewVoting, routing.ViewWaiting, routing.ViewWaiting}, n.Views())
	assert.Equal(t, routing.ViewWaiting, n.Last())
	assert.Equal(t, 2, n.Count(routing.ViewWaiting))
	assert.Equal(t, routing.ViewVoting, <-n.Updates())
}
