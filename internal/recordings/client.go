package recordings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/zoomfetch/internal/zoom"
)

const (
	// DefaultBaseURL is the Zoom REST API base
	DefaultBaseURL = "https://api.zoom.us/v2"

	// RetentionWindow is roughly how far back the provider serves cloud
	// recordings. It is the provider's constraint, not enforced here.
	RetentionWindow = 30 * 24 * time.Hour

	dateFormat = "2006-01-02"
)

// Client provides access to the Zoom cloud recordings API
type Client struct {
	hc       *http.Client
	provider zoom.TokenProvider
	baseURL  string
	account  string
	logger   *slog.Logger
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccount creates a recordings client authenticated with the
// cached OAuth token (or server-to-server credentials) for a specific
// account. Returns an error if no usable token exists - authorize first.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	c := NewClientWithProvider(zoom.NewFileTokenProvider(), DefaultBaseURL, account)
	if _, err := c.provider.GetTokenForAccount(ctx, account); err != nil {
		return nil, &Error{Op: "init", Account: account, Err: err}
	}
	return c, nil
}

// NewClient creates a recordings client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// NewClientWithProvider creates a recordings client from an explicit token
// provider and base URL. Used by tests against a mock provider API.
func NewClientWithProvider(provider zoom.TokenProvider, baseURL, account string) *Client {
	return &Client{
		hc:       &http.Client{},
		provider: provider,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		account:  account,
		logger:   slog.Default(),
	}
}

// SetLogger replaces the client's logger (default slog.Default())
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// DefaultRange returns the list window the provider actually serves:
// the last 30 days, ending today.
func DefaultRange() (from, to time.Time) {
	now := time.Now()
	return now.Add(-RetentionWindow), now
}

// token fetches the account token and enforces the "valid before use"
// invariant so an expired, unrefreshable token fails before any request.
func (c *Client) token(ctx context.Context, op string) (*oauth2.Token, error) {
	t, err := c.provider.GetTokenForAccount(ctx, c.account)
	if err != nil {
		return nil, &Error{Op: op, Account: c.account, Err: err}
	}
	if !t.Valid() {
		return nil, &Error{Op: op, Account: c.account, Err: fmt.Errorf("%w: access token expired and cannot be refreshed", ErrAuthentication)}
	}
	return t, nil
}

// get issues an authorized GET and maps non-2xx statuses onto the error
// taxonomy. The caller owns resp.Body on success.
func (c *Client) get(ctx context.Context, op, rawURL string) (*http.Response, error) {
	t, err := c.token(ctx, op)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Op: op, Account: c.account, Err: err}
	}
	t.SetAuthHeader(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Account: c.account, Err: fmt.Errorf("request failed: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, c.errorFromResponse(op, resp)
	}
	return resp, nil
}

// errorFromResponse converts an API error response into an *Error wrapping
// the matching sentinel. Zoom error bodies look like {"code":124,"message":"..."}.
func (c *Client) errorFromResponse(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &apiErr)
	msg := apiErr.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = resp.Status
	}

	var err error
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		err = fmt.Errorf("%w: %s", ErrAuthentication, msg)
	case http.StatusNotFound:
		err = fmt.Errorf("%w: %s", ErrNotFound, msg)
	default:
		err = fmt.Errorf("unexpected response: %s", msg)
	}
	return &Error{Op: op, Account: c.account, StatusCode: resp.StatusCode, Err: err}
}

// List retrieves one page of the authorized user's cloud recordings within
// the options' date window. The provider restricts results to roughly the
// last 30 days; an out-of-window range comes back as an empty page.
func (c *Client) List(ctx context.Context, opts *ListOptions) (*ListPage, error) {
	q := url.Values{}
	if opts != nil {
		if !opts.From.IsZero() {
			q.Set("from", opts.From.Format(dateFormat))
		}
		if !opts.To.IsZero() {
			q.Set("to", opts.To.Format(dateFormat))
		}
		if opts.PageSize > 0 {
			q.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.PageToken != "" {
			q.Set("next_page_token", opts.PageToken)
		}
	}

	listURL := c.baseURL + "/users/me/recordings"
	if len(q) > 0 {
		listURL += "?" + q.Encode()
	}

	resp, err := c.get(ctx, "list", listURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var page ListPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &Error{Op: "list", Account: c.account, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &page, nil
}

// ListAll follows next_page_token until the listing is exhausted and
// returns all meetings in the window.
func (c *Client) ListAll(ctx context.Context, opts *ListOptions) ([]Meeting, error) {
	var o ListOptions
	if opts != nil {
		o = *opts
	}

	var meetings []Meeting
	for {
		page, err := c.List(ctx, &o)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, page.Meetings...)
		if page.NextPageToken == "" {
			return meetings, nil
		}
		o.PageToken = page.NextPageToken
	}
}

// Get retrieves a single meeting's recordings by meeting ID or UUID.
// Meetings outside the retention window surface as ErrNotFound.
func (c *Client) Get(ctx context.Context, meetingID string) (*Meeting, error) {
	if meetingID == "" {
		return nil, &Error{Op: "get", Account: c.account, Err: fmt.Errorf("meetingID is required")}
	}

	resp, err := c.get(ctx, "get", c.baseURL+"/meetings/"+encodeMeetingID(meetingID)+"/recordings")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var m Meeting
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, &Error{Op: "get", Account: c.account, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &m, nil
}

// encodeMeetingID escapes a meeting ID or UUID for use in a URL path.
// UUIDs that begin with a slash or contain double slashes must be
// double-encoded per the provider's API rules.
func encodeMeetingID(id string) string {
	if strings.HasPrefix(id, "/") || strings.Contains(id, "//") {
		return url.PathEscape(url.PathEscape(id))
	}
	return url.PathEscape(id)
}
