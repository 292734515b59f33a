// Package logging provides slog attribute helpers for consistent structured
// logging across zoomfetch: canonical attribute keys, status values, and a
// token sanitizer so credentials never end up in log output.
package logging
