package recordings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teemow/zoomfetch/internal/zoom"
)

// ErrAuthentication marks failures caused by missing, expired or rejected
// credentials. It is the same sentinel the zoom package wraps, re-exported
// here so callers of the recordings client only need one import.
var ErrAuthentication = zoom.ErrAuthentication

// ErrNotFound marks recordings that do not exist or have left the provider's
// retention window (roughly the last 30 days).
var ErrNotFound = errors.New("recording not found")

// Error represents a failure of a recordings API operation
type Error struct {
	// Op is the operation that failed (e.g., "list", "get", "download")
	Op string

	// Account is the account name the operation ran under
	Account string

	// StatusCode is the HTTP status of the API response, if one was received
	StatusCode int

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("recordings %s (account: %s, status: %d): %v", e.Op, e.Account, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("recordings %s (account: %s): %v", e.Op, e.Account, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// Meeting is one cloud-recorded meeting as returned by the recordings list
// endpoint, together with its recording files.
type Meeting struct {
	UUID           string          `json:"uuid"`
	ID             int64           `json:"id"`
	AccountID      string          `json:"account_id"`
	HostID         string          `json:"host_id"`
	Topic          string          `json:"topic"`
	Type           int             `json:"type"`
	StartTime      time.Time       `json:"start_time"`
	Timezone       string          `json:"timezone"`
	Duration       int             `json:"duration"`
	TotalSize      int64           `json:"total_size"`
	RecordingCount int             `json:"recording_count"`
	ShareURL       string          `json:"share_url"`
	RecordingFiles []RecordingFile `json:"recording_files"`
}

// RecordingFile is a single downloadable file belonging to a meeting
// (video, audio, chat transcript, ...).
type RecordingFile struct {
	ID             string    `json:"id"`
	MeetingID      string    `json:"meeting_id"`
	RecordingStart time.Time `json:"recording_start"`
	RecordingEnd   time.Time `json:"recording_end"`
	FileType       string    `json:"file_type"`
	FileExtension  string    `json:"file_extension"`
	FileSize       int64     `json:"file_size"`
	PlayURL        string    `json:"play_url"`
	DownloadURL    string    `json:"download_url"`
	Status         string    `json:"status"`
	RecordingType  string    `json:"recording_type"`
}

// FileName returns the local file name for this recording file: the file ID
// with the lowercased file extension appended, falling back to the file type
// when the API omits the extension.
func (f *RecordingFile) FileName() string {
	ext := strings.ToLower(f.FileExtension)
	if ext == "" {
		ext = strings.ToLower(f.FileType)
	}
	if ext == "" {
		return f.ID
	}
	return f.ID + "." + ext
}

// ListOptions narrows a recordings list request
type ListOptions struct {
	// From and To bound the search window (dates, not instants). The
	// provider only serves recordings from roughly the last 30 days;
	// a window outside that range yields an empty page.
	From time.Time
	To   time.Time

	// PageSize is the number of meetings per page (provider max 300)
	PageSize int

	// PageToken continues a previous listing
	PageToken string
}

// ListPage is one page of the recordings list response
type ListPage struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	PageCount     int       `json:"page_count"`
	PageSize      int       `json:"page_size"`
	TotalRecords  int       `json:"total_records"`
	NextPageToken string    `json:"next_page_token"`
	Meetings      []Meeting `json:"meetings"`
}
