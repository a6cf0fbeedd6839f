// Package tally interprets the per-candidate vote counts reported by the
// election server.
package tally

import (
	"sort"

	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
)

// Summary is an aggregated, read-only view over one result set.
// The zero value is the pending summary.
type Summary struct {
	entries []election.TallyEntry
	winner  int
	total   int64
}

// Ranked is a tally entry with its display rank and vote share.
type Ranked struct {
	election.TallyEntry
	// Rank is 1-based; entries with equal counts keep server order and
	// receive consecutive ranks.
	Rank  int
	Share float64
}

// Aggregate validates entries and finds the winner in a single pass.
// Entries are unique by id, or by name when the server sends no id.
//
// The winner is the first entry whose count is strictly greater than every
// count before it, so ties go to the earliest entry in server order. An
// empty input yields a pending summary with no winner. entries is not
// modified.
func Aggregate(entries []election.TallyEntry) (Summary, error) {
	if len(entries) == 0 {
		return Summary{}, nil
	}

	seen := make(map[string]struct{}, len(entries))
	s := Summary{
		entries: make([]election.TallyEntry, len(entries)),
		winner:  0,
	}
	copy(s.entries, entries)

	for i, e := range s.entries {
		if e.VoteCount < 0 {
			return Summary{}, apperrors.ValidationField("voteCount",
				"negative vote count for candidate "+label(e))
		}
		if key := e.Key(); key != "" {
			if _, dup := seen[key]; dup {
				return Summary{}, apperrors.ValidationField("candidateId",
					"duplicate candidate "+label(e)+" in results")
			}
			seen[key] = struct{}{}
		}

		s.total += e.VoteCount
		if e.VoteCount > s.entries[s.winner].VoteCount {
			s.winner = i
		}
	}
	return s, nil
}

func label(e election.TallyEntry) string {
	if e.CandidateID != "" {
		return e.CandidateID.String()
	}
	return e.Name
}

// Pending reports whether there are no results yet.
func (s Summary) Pending() bool { return len(s.entries) == 0 }

// Winner returns the leading entry. ok is false for a pending summary.
func (s Summary) Winner() (election.TallyEntry, bool) {
	if s.Pending() {
		return election.TallyEntry{}, false
	}
	return s.entries[s.winner], true
}

// Entries returns a copy of the entries in server order.
func (s Summary) Entries() []election.TallyEntry {
	out := make([]election.TallyEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len is the number of candidates in the result set.
func (s Summary) Len() int { return len(s.entries) }

// TotalVotes is the sum of all counts.
func (s Summary) TotalVotes() int64 { return s.total }

// Share returns count as a fraction of the total, or 0 when nothing was cast.
func (s Summary) Share(count int64) float64 {
	if s.total == 0 {
		return 0
	}
	return float64(count) / float64(s.total)
}

// Ranked returns the entries ordered by descending count. The sort is
// stable so ties keep server order, which keeps the first ranked entry
// equal to Winner.
func (s Summary) Ranked() []Ranked {
	out := make([]Ranked, len(s.entries))
	for i, e := range s.entries {
		out[i] = Ranked{TallyEntry: e, Share: s.Share(e.VoteCount)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VoteCount > out[j].VoteCount
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
