package testutil

import (
	"strconv"

	"github.com/Vinothdevgit/voting-client/internal/domain/election"
)

// CandidateBuilder provides a fluent interface for building candidates for testing.
type CandidateBuilder struct {
	c election.Candidate
}

// NewCandidate creates a builder with sensible defaults.
func NewCandidate(id int, name string) *CandidateBuilder {
	return &CandidateBuilder{c: election.Candidate{
		ID:          election.CandidateID(strconv.Itoa(id)),
		Name:        name,
		Description: name + " for student council",
	}}
}

// WithDescription sets the description.
func (b *CandidateBuilder) WithDescription(d string) *CandidateBuilder {
	b.c.Description = d
	return b
}

// WithPromises sets the promises.
func (b *CandidateBuilder) WithPromises(ps ...string) *CandidateBuilder {
	b.c.Promises = make([]election.Promise, len(ps))
	for i, p := range ps {
		b.c.Promises[i] = election.Promise(p)
	}
	return b
}

// Build returns the candidate.
func (b *CandidateBuilder) Build() election.Candidate {
	return b.c
}

// Entry builds a tally entry with a numeric candidate id.
func Entry(id int, name string, votes int64) election.TallyEntry {
	return election.TallyEntry{
		CandidateID: election.CandidateID(strconv.Itoa(id)),
		Name:        name,
		VoteCount:   votes,
	}
}
