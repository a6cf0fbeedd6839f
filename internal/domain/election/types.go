// Package election holds the value objects exchanged with the election server:
// candidates, tally entries, admin inputs and vote outcomes.
package election

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Vinothdevgit/voting-client/internal/domain/auth"
)

// CandidateID is an opaque candidate identifier. The server issues numeric
// IDs; anything else is carried through as a string.
type CandidateID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *CandidateID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = CandidateID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("candidate id: %w", err)
	}
	*id = CandidateID(n.String())
	return nil
}

// MarshalJSON writes numeric IDs back as numbers so the server sees the
// same representation it issued.
func (id CandidateID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id CandidateID) String() string { return string(id) }

// Promise is a single campaign promise. The server sends either a bare
// string or an object carrying promiseText.
type Promise string

func (p *Promise) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			PromiseText string `json:"promiseText"`
			Text        string `json:"text"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if obj.PromiseText != "" {
			*p = Promise(obj.PromiseText)
		} else {
			*p = Promise(obj.Text)
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = Promise(s)
	return nil
}

// Candidate is a value object fetched fresh on each view entry.
type Candidate struct {
	ID          CandidateID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Symbol      string      `json:"symbol,omitempty"`
	Promises    []Promise   `json:"promises,omitempty"`
}

// Matches reports whether q occurs (case-insensitively) in the candidate's
// name, description or any promise. An empty query matches everything.
func (c Candidate) Matches(q string) bool {
	k := strings.ToLower(strings.TrimSpace(q))
	if k == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Name), k) || strings.Contains(strings.ToLower(c.Description), k) {
		return true
	}
	for _, p := range c.Promises {
		if strings.Contains(strings.ToLower(string(p)), k) {
			return true
		}
	}
	return false
}

// FilterCandidates returns the candidates matching q, preserving order.
func FilterCandidates(cs []Candidate, q string) []Candidate {
	out := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		if c.Matches(q) {
			out = append(out, c)
		}
	}
	return out
}

// TallyEntry is the per-candidate vote count reported by the server.
type TallyEntry struct {
	CandidateID CandidateID `json:"candidateId"`
	Name        string      `json:"name"`
	VoteCount   int64       `json:"voteCount"`
	Promises    []Promise   `json:"promises,omitempty"`
}

// Key identifies the entry within one result set. The admin summary carries
// no id, so the name stands in; an entry with neither has an empty key.
func (e TallyEntry) Key() string {
	if e.CandidateID != "" {
		return e.CandidateID.String()
	}
	if e.Name != "" {
		return "name:" + e.Name
	}
	return ""
}

// UnmarshalJSON accepts the field spellings used by the results and the
// admin summary endpoints. The admin summary is {candidateName, totalVotes}.
func (e *TallyEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID            *CandidateID `json:"id"`
		CandidateID   *CandidateID `json:"candidateId"`
		Name          string       `json:"name"`
		CandidateName string       `json:"candidateName"`
		Votes       *int64       `json:"votes"`
		VoteCount   *int64       `json:"voteCount"`
		TotalVotes  *int64       `json:"totalVotes"`
		Promises    []Promise    `json:"promises"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*e = TallyEntry{Name: raw.Name, Promises: raw.Promises}
	if e.Name == "" {
		e.Name = raw.CandidateName
	}
	switch {
	case raw.CandidateID != nil:
		e.CandidateID = *raw.CandidateID
	case raw.ID != nil:
		e.CandidateID = *raw.ID
	}
	switch {
	case raw.VoteCount != nil:
		e.VoteCount = *raw.VoteCount
	case raw.Votes != nil:
		e.VoteCount = *raw.Votes
	case raw.TotalVotes != nil:
		e.VoteCount = *raw.TotalVotes
	}
	return nil
}

// Vote is the single ballot a session may cast.
type Vote struct {
	CandidateID CandidateID `json:"candidateId"`
}

// Credentials is the login form payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewUser is the admin "add user" form payload.
type NewUser struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
	FullName string    `json:"fullName"`
}

// CandidateInput is the admin add/edit candidate payload.
type CandidateInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Symbol      string   `json:"symbol,omitempty"`
	Promises    []string `json:"promises"`
}

// ParsePromises splits multi-line promise text into trimmed, non-empty lines.
func ParsePromises(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
