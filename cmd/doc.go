// Package cmd implements the command-line interface for zoomfetch.
//
// This package provides the following commands:
//   - auth: Authorize zoomfetch against a Zoom account (authorization-code flow)
//   - list: List cloud recordings within a date window
//   - download: Download the recording files of one or all meetings
//   - version: Display version information
//
// The list command is the default command when no subcommand is specified.
package cmd
