package client_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opsdesk/agentdesk/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_MissingFileIsUnauthenticated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	session, err := client.LoadSession(path)
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
	assert.Equal(t, "", session.Token())
}

func TestSession_PersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")

	session, err := client.LoadSession(path)
	require.NoError(t, err)
	require.NoError(t, session.SetToken("tok-123"))
	assert.True(t, session.Authenticated())

	// A fresh session loads the persisted token.
	reloaded, err := client.LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", reloaded.Token())
}

func TestSession_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	session, err := client.LoadSession(path)
	require.NoError(t, err)
	require.NoError(t, session.SetToken("tok-123"))

	require.NoError(t, session.Clear())
	assert.False(t, session.Authenticated())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clear session is fine.
	require.NoError(t, session.Clear())
}
