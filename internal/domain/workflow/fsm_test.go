package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_HappyPath(t *testing.T) {
	p := SignedOut
	for _, step := range []struct {
		on   Event
		want Phase
	}{
		{LoginSucceeded, Browsing},
		{Navigate, Browsing},
		{SubmitStarted, Submitting},
		{VoteAccepted, Waiting},
		{CountdownDone, VoteClosed},
		{Navigate, VoteClosed},
		{Logout, SignedOut},
	} {
		next, err := Next(p, step.on)
		require.NoError(t, err, "%s on %s", p, step.on)
		assert.Equal(t, step.want, next, "%s on %s", p, step.on)
		p = next
	}
}

func TestNext_RejectsUnknownPairs(t *testing.T) {
	tests := []struct {
		from Phase
		on   Event
	}{
		{SignedOut, SubmitStarted},
		{SignedOut, CountdownDone},
		{Browsing, VoteAccepted},
		{Submitting, SubmitStarted},
		{Submitting, Navigate},
		{Waiting, SubmitStarted},
		{VoteClosed, SubmitStarted},
		{VoteClosed, CountdownDone},
	}
	for _, tt := range tests {
		got, err := Next(tt.from, tt.on)
		var invalid *ErrInvalidTransition
		require.True(t, errors.As(err, &invalid), "%s on %s", tt.from, tt.on)
		assert.Equal(t, tt.from, got, "state must not change")
	}
}

func TestNext_FailuresReturnToBrowsing(t *testing.T) {
	got, err := Next(Submitting, VoteFailed)
	require.NoError(t, err)
	assert.Equal(t, Browsing, got)

	got, err = Next(Submitting, VoteDuplicate)
	require.NoError(t, err)
	assert.Equal(t, VoteClosed, got)
}

func TestLeavesWaiting(t *testing.T) {
	assert.True(t, LeavesWaiting(Waiting, Logout))
	assert.True(t, LeavesWaiting(Waiting, Navigate))
	assert.False(t, LeavesWaiting(Waiting, CountdownDone))
	assert.False(t, LeavesWaiting(Waiting, SubmitStarted))
	assert.False(t, LeavesWaiting(Browsing, Logout))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "VoteClosed", VoteClosed.String())
	assert.Equal(t, "CountdownDone", CountdownDone.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
	assert.Contains(t, (&ErrInvalidTransition{From: SignedOut, Event: SubmitStarted}).Error(), "SubmitStarted")
}
