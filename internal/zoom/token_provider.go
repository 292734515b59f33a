package zoom

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
)

// TokenProvider is an interface for providing OAuth tokens for the Zoom API.
// This abstraction allows different token sources (file-based, in-memory for
// tests, etc.) to back the recordings client.
type TokenProvider interface {
	// GetTokenForAccount retrieves an OAuth token for the specified account
	GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error)

	// HasTokenForAccount checks if a token exists for the specified account
	HasTokenForAccount(account string) bool
}

// FileTokenProvider provides tokens from the on-disk cache. The refreshing
// token source built for each account is kept for the provider's lifetime,
// so a still-valid token is reused across requests instead of hitting the
// token endpoint again (acquire, use while valid, refresh on expiry).
type FileTokenProvider struct {
	mu      sync.Mutex
	sources map[string]oauth2.TokenSource
}

// NewFileTokenProvider creates a new file-based token provider
func NewFileTokenProvider() *FileTokenProvider {
	return &FileTokenProvider{sources: make(map[string]oauth2.TokenSource)}
}

// GetTokenForAccount retrieves a token from the cache for the specified account
func (p *FileTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	ts, err := p.tokenSource(ctx, account)
	if err != nil {
		return nil, err
	}

	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get token from cache: %w", err)
	}

	return token, nil
}

// tokenSource returns the account's token source, building it on first use
func (p *FileTokenProvider) tokenSource(ctx context.Context, account string) (oauth2.TokenSource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ts, ok := p.sources[account]; ok {
		return ts, nil
	}
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	if p.sources == nil {
		p.sources = make(map[string]oauth2.TokenSource)
	}
	p.sources[account] = ts
	return ts, nil
}

// HasTokenForAccount checks if a token file exists for the specified account
func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	return HasTokenForAccount(account)
}

// StaticTokenProvider serves a fixed token for every account. It is intended
// for tests and for embedding zoomfetch where token management happens
// elsewhere.
type StaticTokenProvider struct {
	Token *oauth2.Token
}

// GetTokenForAccount returns the fixed token
func (p *StaticTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	if p.Token == nil {
		return nil, authError("no token configured", fmt.Errorf("static provider is empty"))
	}
	return p.Token, nil
}

// HasTokenForAccount reports whether a fixed token is configured
func (p *StaticTokenProvider) HasTokenForAccount(account string) bool {
	return p.Token != nil
}
