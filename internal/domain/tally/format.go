package tally

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatCount renders a vote count with thousands separators.
func FormatCount(n int64) string { return humanize.Comma(n) }

// FormatRank renders a 1-based rank as an ordinal ("1st", "2nd").
func FormatRank(rank int) string { return humanize.Ordinal(rank) }

// FormatShare renders a fraction as a percentage with one decimal.
func FormatShare(share float64) string { return fmt.Sprintf("%.1f%%", share*100) }

// Headline is the one-line result announcement.
func (s Summary) Headline() string {
	w, ok := s.Winner()
	if !ok {
		return "No results yet."
	}
	return fmt.Sprintf("%s leads with %s of %s votes (%s)",
		w.Name, FormatCount(w.VoteCount), FormatCount(s.total), FormatShare(s.Share(w.VoteCount)))
}
