package workflowtest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, s *ElectionServer, user, pass string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": user, "password": pass})
	resp, err := http.Post(s.URL()+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct{ Token string }
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func authed(t *testing.T, method, url, token string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestElectionServer_SecondVoteConflicts(t *testing.T) {
	s := NewElectionServer(t)
	defer s.Close()
	id := s.AddCandidate("Asha", "Sports")

	tok := login(t, s, VoterUsername, VoterPassword)
	vote, _ := json.Marshal(map[string]any{"candidateId": 1})

	resp := authed(t, http.MethodPost, s.URL()+"/api/vote", tok, vote)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = authed(t, http.MethodPost, s.URL()+"/api/vote", tok, vote)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	got, ok := s.VoteOf(VoterUsername)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestElectionServer_AdminRoutesNeedAdmin(t *testing.T) {
	s := NewElectionServer(t)
	defer s.Close()

	voter := login(t, s, VoterUsername, VoterPassword)
	resp := authed(t, http.MethodGet, s.URL()+"/api/admin/votes", voter, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := login(t, s, AdminUsername, AdminPassword)
	resp = authed(t, http.MethodGet, s.URL()+"/api/admin/votes", admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = authed(t, http.MethodGet, s.URL()+"/api/candidates", "garbage", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestElectionServer_FailNext(t *testing.T) {
	s := NewElectionServer(t)
	defer s.Close()
	s.FailNext("GET /api/candidates", http.StatusServiceUnavailable, "maintenance")

	tok := login(t, s, VoterUsername, VoterPassword)
	resp := authed(t, http.MethodGet, s.URL()+"/api/candidates", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = authed(t, http.MethodGet, s.URL()+"/api/candidates", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, s.Count(http.MethodGet, "/api/candidates"))
}
