package zoom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/oauth2"
)

// ErrAuthentication is wrapped into every error caused by bad credentials,
// a rejected code exchange, a failed refresh, or a missing cached token.
// Callers detect it with errors.Is.
var ErrAuthentication = errors.New("zoom: authentication failed")

// Endpoint is Zoom's OAuth2 provider endpoint. It is a variable so tests can
// point the package at a mock provider.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://zoom.us/oauth/authorize",
	TokenURL:  "https://zoom.us/oauth/token",
	AuthStyle: oauth2.AuthStyleInHeader,
}

var accountNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if !accountNameRe.MatchString(account) {
		return fmt.Errorf("account name %q may only contain letters, digits, hyphens and underscores", account)
	}
	return nil
}

// getTokenFilePath returns the token cache file for the given account,
// e.g. ~/.cache/zoomfetch/zoom-work.token
func getTokenFilePath(account string) string {
	return filepath.Join(userCacheDir(), "zoomfetch", fmt.Sprintf("zoom-%s.token", account))
}

// oauthConfig returns the OAuth2 configuration for the authorization-code flow
func oauthConfig(creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     Endpoint,
		RedirectURL:  creds.RedirectURI,
	}
}

// HasTokenForAccount checks if a cached OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.ReadFile(getTokenFilePath(account))
	return err == nil
}

// HasToken checks if a cached OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// GetAuthURLForAccount returns the OAuth URL the user must open in a browser
// to authorize access for a specific account
func GetAuthURLForAccount(account string) (string, error) {
	if err := validateAccountName(account); err != nil {
		return "", err
	}
	creds, err := LoadCredentials()
	if err != nil {
		return "", err
	}
	if creds.ServerToServer() {
		return "", fmt.Errorf("account_credentials apps do not use an authorization URL")
	}
	return oauthConfig(creds).AuthCodeURL("state"), nil
}

// GetAuthURL returns the OAuth URL for user authorization for the default account
func GetAuthURL() (string, error) {
	return GetAuthURLForAccount("default")
}

// extractAuthCode accepts either a bare authorization code or the full
// redirect URL the browser landed on and returns the code.
func extractAuthCode(input string) (string, error) {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "code=") {
		return input, nil
	}
	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("failed to parse redirect URL: %w", err)
	}
	code := u.Query().Get("code")
	if code == "" {
		return "", fmt.Errorf("redirect URL contains no code parameter")
	}
	return code, nil
}

// SaveTokenForAccount exchanges an authorization code (or the full redirect
// URL containing it) for tokens and caches them for a specific account
func SaveTokenForAccount(ctx context.Context, account string, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}
	creds, err := LoadCredentials()
	if err != nil {
		return err
	}
	if creds.ServerToServer() {
		return fmt.Errorf("account_credentials apps do not exchange authorization codes")
	}

	code, err := extractAuthCode(authCode)
	if err != nil {
		return err
	}

	t, err := oauthConfig(creds).Exchange(ctx, code)
	if err != nil {
		return authError("failed to exchange auth code", err)
	}

	return writeTokenFile(account, t)
}

// SaveToken exchanges an authorization code for tokens and caches them for the default account
func SaveToken(ctx context.Context, authCode string) error {
	return SaveTokenForAccount(ctx, "default", authCode)
}

// GetTokenSourceForAccount returns a refreshing OAuth2 token source for the
// specified account. For authorization-code apps the cached token is loaded
// from disk and refreshed tokens are written back; for account_credentials
// apps tokens are minted directly from the token endpoint.
// The returned source has been validated with one Token() call.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}
	creds, err := LoadCredentials()
	if err != nil {
		return nil, err
	}

	var ts oauth2.TokenSource
	if creds.ServerToServer() {
		ts = oauth2.ReuseTokenSource(nil, &accountTokenSource{ctx: ctx, creds: creds})
	} else {
		cached, err := readTokenFile(account)
		if err != nil {
			return nil, authError(fmt.Sprintf("no cached Zoom OAuth token for account %s, authorize access first", account), err)
		}
		ts = &persistingTokenSource{
			account: account,
			last:    cached.AccessToken,
			base:    oauthConfig(creds).TokenSource(ctx, cached),
		}
	}

	// Validate the source: an expired token without a usable refresh token
	// fails here instead of on the first API call.
	if _, err := ts.Token(); err != nil {
		return nil, authError(fmt.Sprintf("cached token for account %s is invalid", account), err)
	}

	return ts, nil
}

// GetTokenSource returns a refreshing OAuth2 token source for the default account
func GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	return GetTokenSourceForAccount(ctx, "default")
}

func authError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrAuthentication, err)
}

func readTokenFile(account string) (*oauth2.Token, error) {
	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, err
	}
	var t oauth2.Token
	if err := json.Unmarshal(slurp, &t); err != nil {
		return nil, fmt.Errorf("invalid token file format: %w", err)
	}
	if t.AccessToken == "" {
		return nil, fmt.Errorf("token file contains no access token")
	}
	return &t, nil
}

func writeTokenFile(account string, t *oauth2.Token) error {
	cacheDir := filepath.Join(userCacheDir(), "zoomfetch")
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(getTokenFilePath(account), data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}
