package zoom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ZOOM_CLIENT_ID", "")
	t.Setenv("ZOOM_CLIENT_SECRET", "")
	t.Setenv("ZOOM_REDIRECT_URI", "")
	t.Setenv("ZOOM_ACCOUNT_ID", "")
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("ZOOM_CLIENT_ID", "id-1")
	t.Setenv("ZOOM_CLIENT_SECRET", "secret-1")
	t.Setenv("ZOOM_REDIRECT_URI", "http://localhost:8080/zoom_login")

	creds, err := LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "id-1", creds.ClientID)
	assert.Equal(t, "secret-1", creds.ClientSecret)
	assert.Equal(t, "http://localhost:8080/zoom_login", creds.RedirectURI)
	assert.False(t, creds.ServerToServer())
}

func TestLoadCredentialsServerToServer(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("ZOOM_CLIENT_ID", "id-1")
	t.Setenv("ZOOM_CLIENT_SECRET", "secret-1")
	t.Setenv("ZOOM_ACCOUNT_ID", "acct-1")

	creds, err := LoadCredentials()
	require.NoError(t, err)
	assert.True(t, creds.ServerToServer())
}

func TestLoadCredentialsFromFile(t *testing.T) {
	clearCredentialEnv(t)

	keyDir := filepath.Join(os.Getenv("HOME"), "keys")
	require.NoError(t, os.MkdirAll(keyDir, 0700))
	file := filepath.Join(keyDir, "zoomfetch.credentials")
	require.NoError(t, os.WriteFile(file, []byte("id-2 secret-2 http://localhost:9090/cb\n"), 0600))

	creds, err := LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "id-2", creds.ClientID)
	assert.Equal(t, "secret-2", creds.ClientSecret)
	assert.Equal(t, "http://localhost:9090/cb", creds.RedirectURI)
}

func TestLoadCredentialsMissing(t *testing.T) {
	clearCredentialEnv(t)

	_, err := LoadCredentials()
	require.Error(t, err)
}

func TestLoadCredentialsBadFile(t *testing.T) {
	clearCredentialEnv(t)

	keyDir := filepath.Join(os.Getenv("HOME"), "keys")
	require.NoError(t, os.MkdirAll(keyDir, 0700))
	file := filepath.Join(keyDir, "zoomfetch.credentials")
	require.NoError(t, os.WriteFile(file, []byte("only-one-field\n"), 0600))

	_, err := LoadCredentials()
	require.Error(t, err)
}

func TestLoadCredentialsRequiresFlowSelection(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("ZOOM_CLIENT_ID", "id-1")
	t.Setenv("ZOOM_CLIENT_SECRET", "secret-1")

	// Neither a redirect URI nor an account ID selects a grant type.
	_, err := LoadCredentials()
	require.Error(t, err)
}
