package zoom

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenProviderReusesValidToken(t *testing.T) {
	var mints atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mints.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"s2s-token-%d","token_type":"bearer","expires_in":3600}`, mints.Load())
	}))
	defer srv.Close()
	setupTestEnv(t, srv.URL)
	t.Setenv("ZOOM_ACCOUNT_ID", "acct-1")

	p := NewFileTokenProvider()
	ctx := context.Background()

	first, err := p.GetTokenForAccount(ctx, "default")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		tok, err := p.GetTokenForAccount(ctx, "default")
		require.NoError(t, err)
		assert.Equal(t, first.AccessToken, tok.AccessToken)
	}

	// The still-valid token must be reused, not re-minted per call.
	assert.Equal(t, int64(1), mints.Load(), "token endpoint hit once for three token fetches")
}

func TestFileTokenProviderKeepsSourcesPerAccount(t *testing.T) {
	var mints atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mints.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"s2s-token-%d","token_type":"bearer","expires_in":3600}`, mints.Load())
	}))
	defer srv.Close()
	setupTestEnv(t, srv.URL)
	t.Setenv("ZOOM_ACCOUNT_ID", "acct-1")

	p := NewFileTokenProvider()
	ctx := context.Background()

	_, err := p.GetTokenForAccount(ctx, "default")
	require.NoError(t, err)
	_, err = p.GetTokenForAccount(ctx, "work")
	require.NoError(t, err)
	_, err = p.GetTokenForAccount(ctx, "default")
	require.NoError(t, err)

	assert.Equal(t, int64(2), mints.Load(), "one mint per account, none for the repeat")
}
