package zoom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Credentials holds the Zoom app credentials supplied by the user.
// ClientID and ClientSecret are always required. RedirectURI selects the
// authorization-code flow; AccountID selects the server-to-server
// (account_credentials) flow and takes precedence when both are set.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AccountID    string
}

// ServerToServer reports whether the credentials select the
// account_credentials grant.
func (c Credentials) ServerToServer() bool {
	return c.AccountID != ""
}

func (c Credentials) validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("client ID and client secret are required")
	}
	if c.RedirectURI == "" && c.AccountID == "" {
		return fmt.Errorf("either a redirect URI or an account ID is required")
	}
	return nil
}

// LoadCredentials reads Zoom app credentials from the environment
// (ZOOM_CLIENT_ID, ZOOM_CLIENT_SECRET, ZOOM_REDIRECT_URI, ZOOM_ACCOUNT_ID).
// If the client ID and secret are not set in the environment, it falls back
// to a whitespace-separated credentials file at ~/keys/zoomfetch.credentials
// containing "client_id client_secret [redirect_uri]".
func LoadCredentials() (Credentials, error) {
	creds := Credentials{
		ClientID:     os.Getenv("ZOOM_CLIENT_ID"),
		ClientSecret: os.Getenv("ZOOM_CLIENT_SECRET"),
		RedirectURI:  os.Getenv("ZOOM_REDIRECT_URI"),
		AccountID:    os.Getenv("ZOOM_ACCOUNT_ID"),
	}

	if creds.ClientID == "" || creds.ClientSecret == "" {
		file := filepath.Join(homeDir(), "keys", "zoomfetch.credentials")
		slurp, err := os.ReadFile(file)
		if err != nil {
			return Credentials{}, fmt.Errorf("no Zoom credentials in environment and failed to read %v: %w", file, err)
		}
		f := strings.Fields(strings.TrimSpace(string(slurp)))
		if len(f) < 2 || len(f) > 3 {
			return Credentials{}, fmt.Errorf("expected two or three fields (client_id, client_secret, optional redirect_uri) in %v; got %d fields", file, len(f))
		}
		creds.ClientID, creds.ClientSecret = f[0], f[1]
		if len(f) == 3 && creds.RedirectURI == "" {
			creds.RedirectURI = f[2]
		}
	}

	if err := creds.validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	// Windows fallback
	return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
}
