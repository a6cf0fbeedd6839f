package ports_test

import (
	"testing"

	"github.com/Vinothdevgit/voting-client/internal/mocks"
	mockauth "github.com/Vinothdevgit/voting-client/internal/mocks/auth"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.ElectionAPI = (*mocks.MockElectionAPI)(nil)
	var _ ports.KeyValueStore = (*mocks.MockKeyValueStore)(nil)
	var _ ports.SessionStore = (*mockauth.MemorySessionStore)(nil)
	var _ ports.CredentialDecoder = mockauth.StaticDecoder{}
	var _ ports.Navigator = (*mockauth.RecordingNavigator)(nil)
	var _ ports.Navigator = ports.NavigatorFunc(nil)
}
