package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/zoomfetch/internal/logging"
)

// persistingTokenSource writes tokens back to the account's cache file
// whenever the underlying source hands out a new access token, so a refresh
// performed in one run is visible to the next.
type persistingTokenSource struct {
	account string
	base    oauth2.TokenSource

	mu   sync.Mutex
	last string // access token already on disk
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t.AccessToken != s.last {
		if err := writeTokenFile(s.account, t); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		s.last = t.AccessToken
		slog.Debug("persisted refreshed token",
			logging.Account(s.account),
			slog.String("token", logging.SanitizeToken(t.AccessToken)))
	}
	return t, nil
}

// accountTokenSource implements Zoom's server-to-server OAuth flow
// (grant_type=account_credentials). The x/oauth2 clientcredentials package
// cannot be used because it refuses to override grant_type, so the token
// request is issued directly. Zoom returns no refresh token for this grant;
// expired tokens are simply re-minted.
type accountTokenSource struct {
	ctx   context.Context
	creds Credentials
}

func (s *accountTokenSource) Token() (*oauth2.Token, error) {
	form := url.Values{
		"grant_type": {"account_credentials"},
		"account_id": {s.creds.AccountID},
	}

	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.creds.ClientID, s.creds.ClientSecret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, authError(fmt.Sprintf("token endpoint returned status %d", resp.StatusCode), fmt.Errorf("%s", strings.TrimSpace(string(body))))
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, authError("token endpoint returned no access token", fmt.Errorf("empty access_token field"))
	}

	t := &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
	}
	if tr.ExpiresIn > 0 {
		t.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return t, nil
}
