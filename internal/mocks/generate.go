// Package mocks provides mock implementations for testing the voting client.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockElectionAPI(ctrl)
//	api.EXPECT().SubmitVote(gomock.Any(), "tok", gomock.Any()).Return(nil)
package mocks

// Generate mock for ElectionAPI interface from internal/ports package.
// This creates MockElectionAPI with methods for all ElectionAPI interface methods:
// Login, ListCandidates, SubmitVote, FetchResults, RegisterUser, AddCandidate,
// UpdateCandidate, DeleteCandidate, AdminCandidates, VoteSummary
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=election_api_mock.go github.com/Vinothdevgit/voting-client/internal/ports ElectionAPI

// Generate mock for KeyValueStore interface from internal/ports package.
// This creates MockKeyValueStore with methods: Get, GetMany, SetMany, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=key_value_store_mock.go github.com/Vinothdevgit/voting-client/internal/ports KeyValueStore
