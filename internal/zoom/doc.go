// Package zoom provides OAuth2 authentication and token management for the Zoom API.
//
// Two grant types are supported: the authorization-code flow for user-level
// apps (authorize in a browser, paste the code or redirect URL back) and the
// server-to-server account_credentials flow for account-level apps. Tokens are
// cached on disk per named account and refreshed transparently through an
// oauth2.TokenSource.
//
// The TokenProvider interface allows different token sources to be plugged in,
// so tests and embedding applications can supply tokens without the file cache.
package zoom
