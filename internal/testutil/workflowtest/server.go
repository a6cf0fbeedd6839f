// Package workflowtest provides an in-memory election server for end-to-end
// client tests.
package workflowtest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	"github.com/Vinothdevgit/voting-client/internal/testutil"
)

// Seeded accounts.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
	VoterUsername = "student1"
	VoterPassword = "pass123"
)

// RecordedRequest is what the server saw for one request.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	UserAgent     string
	ContentType   string
	Body          []byte
}

type account struct {
	password string
	role     domainauth.Role
	fullName string
}

type injectedFailure struct {
	status int
	body   string
}

// ElectionServer mimics the election server's HTTP surface.
type ElectionServer struct {
	t  testutil.TestingTB
	ts *httptest.Server

	mu         sync.Mutex
	accounts   map[string]account
	candidates []election.Candidate
	nextID     int
	votes      map[string]election.CandidateID
	failures   map[string][]injectedFailure
	requests   []RecordedRequest
}

// NewElectionServer starts a server seeded with one admin and one voter.
func NewElectionServer(t testutil.TestingTB) *ElectionServer {
	t.Helper()

	s := &ElectionServer{
		t:        t,
		accounts: make(map[string]account),
		votes:    make(map[string]election.CandidateID),
		failures: make(map[string][]injectedFailure),
		nextID:   1,
	}
	s.AddAccount(AdminUsername, AdminPassword, domainauth.RoleAdmin)
	s.AddAccount(VoterUsername, VoterPassword, domainauth.RoleUser)
	s.ts = httptest.NewServer(s.record(s.routes()))
	return s
}

// URL is the server's base URL.
func (s *ElectionServer) URL() string { return s.ts.URL }

// Close shuts the server down.
func (s *ElectionServer) Close() { s.ts.Close() }

// AddAccount registers a login.
func (s *ElectionServer) AddAccount(username, password string, role domainauth.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = account{password: password, role: role}
}

// AddCandidate seeds a candidate and returns its id.
func (s *ElectionServer) AddCandidate(name, description string, promises ...string) election.CandidateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCandidateLocked(election.CandidateInput{Name: name, Description: description, Promises: promises})
}

func (s *ElectionServer) addCandidateLocked(in election.CandidateInput) election.CandidateID {
	id := election.CandidateID(strconv.Itoa(s.nextID))
	s.nextID++
	c := election.Candidate{ID: id, Name: in.Name, Description: in.Description, Symbol: in.Symbol}
	for _, p := range in.Promises {
		c.Promises = append(c.Promises, election.Promise(p))
	}
	s.candidates = append(s.candidates, c)
	return id
}

// CastVote records a vote directly, bypassing HTTP.
func (s *ElectionServer) CastVote(username string, id election.CandidateID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[username] = id
}

// FailNext makes the next request matching "METHOD /path" answer status.
func (s *ElectionServer) FailNext(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], injectedFailure{status: status, body: body})
}

// Requests returns every request received so far.
func (s *ElectionServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Count returns how many requests matched method and path.
func (s *ElectionServer) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Candidates returns the current candidate list.
func (s *ElectionServer) Candidates() []election.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]election.Candidate(nil), s.candidates...)
}

// HasAccount reports whether username can log in.
func (s *ElectionServer) HasAccount(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[username]
	return ok
}

// VoteOf returns the candidate username voted for.
func (s *ElectionServer) VoteOf(username string) (election.CandidateID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.votes[username]
	return id, ok
}

func (s *ElectionServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/candidates", s.voter(s.handleCandidates))
	mux.HandleFunc("POST /api/vote", s.voter(s.handleVote))
	mux.HandleFunc("GET /api/vote/result", s.voter(s.handleResults))
	mux.HandleFunc("POST /api/users/register", s.admin(s.handleRegister))
	mux.HandleFunc("POST /admin/candidate/add", s.admin(s.handleAddCandidate))
	mux.HandleFunc("PUT /admin/candidate/{id}", s.admin(s.handleUpdateCandidate))
	mux.HandleFunc("DELETE /admin/candidate/{id}", s.admin(s.handleDeleteCandidate))
	mux.HandleFunc("GET /admin/candidates", s.admin(s.handleCandidates))
	mux.HandleFunc("GET /api/admin/votes", s.admin(s.handleAdminVotes))
	return mux
}

// record captures every request and serves injected failures first.
func (s *ElectionServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			UserAgent:     r.Header.Get("User-Agent"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		route := r.Method + " " + r.URL.Path
		var fail *injectedFailure
		if queue := s.failures[route]; len(queue) > 0 {
			fail = &queue[0]
			s.failures[route] = queue[1:]
		}
		s.mu.Unlock()

		if fail != nil {
			http.Error(w, fail.body, fail.status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type principal struct {
	username string
	role     domainauth.Role
}

func (s *ElectionServer) authenticate(r *http.Request) (principal, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return principal{}, errors.New("missing bearer token")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return testutil.SigningKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	if err != nil {
		return principal{}, err
	}

	sub, _ := claims.GetSubject()
	p := principal{username: sub, role: domainauth.RoleUser}
	if auths, ok := claims["authorities"].([]any); ok && len(auths) > 0 {
		if a, ok := auths[0].(string); ok {
			p.role = domainauth.ParseRole(a)
		}
	}
	return p, nil
}

type authedHandler func(w http.ResponseWriter, r *http.Request, p principal)

func (s *ElectionServer) voter(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.authenticate(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		h(w, r, p)
	}
}

func (s *ElectionServer) admin(h authedHandler) http.HandlerFunc {
	return s.voter(func(w http.ResponseWriter, r *http.Request, p principal) {
		if p.role != domainauth.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		h(w, r, p)
	})
}

func (s *ElectionServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.t.Logf("encode response: %v", err)
	}
}

func (s *ElectionServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in election.Credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[in.Username]
	s.mu.Unlock()
	if !ok || acct.password != in.Password {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token := testutil.TokenFor(s.t, in.Username, domainauth.RolePrefix+acct.role.String())
	s.writeJSON(w, map[string]string{"token": token})
}

// promiseJSON is the object form the server uses for promises.
type promiseJSON struct {
	ID          int    `json:"id"`
	PromiseText string `json:"promiseText"`
}

type candidateJSON struct {
	ID          election.CandidateID `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Symbol      string               `json:"symbol,omitempty"`
	Promises    []promiseJSON        `json:"promises"`
}

func toCandidateJSON(c election.Candidate) candidateJSON {
	out := candidateJSON{ID: c.ID, Name: c.Name, Description: c.Description, Symbol: c.Symbol, Promises: []promiseJSON{}}
	for i, p := range c.Promises {
		out.Promises = append(out.Promises, promiseJSON{ID: i + 1, PromiseText: string(p)})
	}
	return out
}

func (s *ElectionServer) handleCandidates(w http.ResponseWriter, _ *http.Request, _ principal) {
	cs := s.Candidates()
	out := make([]candidateJSON, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCandidateJSON(c))
	}
	s.writeJSON(w, out)
}

func (s *ElectionServer) handleVote(w http.ResponseWriter, r *http.Request, p principal) {
	var in election.Vote
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, voted := s.votes[p.username]; voted {
		http.Error(w, "User has already voted", http.StatusConflict)
		return
	}
	if _, ok := s.findLocked(in.CandidateID); !ok {
		http.Error(w, "Unknown candidate", http.StatusBadRequest)
		return
	}
	s.votes[p.username] = in.CandidateID
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Vote recorded")
}

func (s *ElectionServer) findLocked(id election.CandidateID) (int, bool) {
	for i, c := range s.candidates {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *ElectionServer) countsLocked() map[election.CandidateID]int64 {
	counts := make(map[election.CandidateID]int64, len(s.candidates))
	for _, id := range s.votes {
		counts[id]++
	}
	return counts
}

func (s *ElectionServer) handleResults(w http.ResponseWriter, _ *http.Request, _ principal) {
	type resultJSON struct {
		ID       election.CandidateID `json:"id"`
		Name     string               `json:"name"`
		Votes    int64                `json:"votes"`
		Promises []promiseJSON        `json:"promises"`
	}

	s.mu.Lock()
	counts := s.countsLocked()
	out := make([]resultJSON, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, resultJSON{ID: c.ID, Name: c.Name, Votes: counts[c.ID], Promises: toCandidateJSON(c).Promises})
	}
	s.mu.Unlock()

	s.writeJSON(w, out)
}

func (s *ElectionServer) handleAdminVotes(w http.ResponseWriter, _ *http.Request, _ principal) {
	type summaryJSON struct {
		CandidateName string `json:"candidateName"`
		TotalVotes    int64  `json:"totalVotes"`
	}

	s.mu.Lock()
	counts := s.countsLocked()
	out := make([]summaryJSON, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, summaryJSON{CandidateName: c.Name, TotalVotes: counts[c.ID]})
	}
	s.mu.Unlock()

	s.writeJSON(w, out)
}

func (s *ElectionServer) handleRegister(w http.ResponseWriter, r *http.Request, _ principal) {
	var in election.NewUser
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if in.Username == "" || in.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[in.Username]; exists {
		http.Error(w, "Username already exists", http.StatusConflict)
		return
	}
	s.accounts[in.Username] = account{password: in.Password, role: domainauth.ParseRole(in.Role.String()), fullName: in.FullName}
	w.WriteHeader(http.StatusCreated)
}

func (s *ElectionServer) handleAddCandidate(w http.ResponseWriter, r *http.Request, _ principal) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, "expected multipart form", http.StatusBadRequest)
		return
	}
	in := election.CandidateInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: r.FormValue("description"),
		Symbol:      r.FormValue("symbol"),
	}
	if in.Name == "" {
		http.Error(w, "Candidate name is required", http.StatusBadRequest)
		return
	}
	if raw := r.FormValue("promises"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Promises); err != nil {
			http.Error(w, fmt.Sprintf("invalid promises: %v", err), http.StatusBadRequest)
			return
		}
	}

	s.mu.Lock()
	id := s.addCandidateLocked(in)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]election.CandidateID{"id": id}); err != nil {
		s.t.Logf("encode response: %v", err)
	}
}

func (s *ElectionServer) handleUpdateCandidate(w http.ResponseWriter, r *http.Request, _ principal) {
	var in election.CandidateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findLocked(election.CandidateID(r.PathValue("id")))
	if !ok {
		http.Error(w, "Candidate not found", http.StatusNotFound)
		return
	}
	c := election.Candidate{ID: s.candidates[i].ID, Name: in.Name, Description: in.Description, Symbol: in.Symbol}
	for _, p := range in.Promises {
		c.Promises = append(c.Promises, election.Promise(p))
	}
	s.candidates[i] = c
	w.WriteHeader(http.StatusOK)
}

func (s *ElectionServer) handleDeleteCandidate(w http.ResponseWriter, r *http.Request, _ principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findLocked(election.CandidateID(r.PathValue("id")))
	if !ok {
		http.Error(w, "Candidate not found", http.StatusNotFound)
		return
	}
	s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}
