// Package recordings provides a client for Zoom cloud recordings: listing
// recordings within a date window, fetching a single meeting's recordings,
// and downloading recording files to the local filesystem.
//
// All operations require an authorized token, supplied through a
// zoom.TokenProvider. Failures map onto a small taxonomy: ErrAuthentication
// for missing/expired/rejected credentials, ErrNotFound for recordings that
// do not exist or have left the provider's retention window, and plain
// wrapped errors for transport failures.
package recordings
