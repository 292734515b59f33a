package recordings

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/teemow/zoomfetch/internal/logging"
)

// Download fetches one recording file and writes it to dir, creating the
// directory as needed. The file name is the recording's ID plus its
// lowercased extension. Returns the path of the written file.
//
// The token is checked for validity before anything else: an expired token
// that cannot be refreshed fails with an authentication error without a
// request being made or a file being created.
func (c *Client) Download(ctx context.Context, f *RecordingFile, dir string) (string, error) {
	if f == nil || f.DownloadURL == "" {
		return "", &Error{Op: "download", Account: c.account, Err: fmt.Errorf("recording file has no download URL")}
	}

	resp, err := c.get(ctx, "download", f.DownloadURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &Error{Op: "download", Account: c.account, Err: fmt.Errorf("failed to create directory: %w", err)}
	}

	logger := logging.WithOperation(logging.WithAccount(c.logger, c.account), "download")

	path := filepath.Join(dir, f.FileName())
	logger.Info("starting download",
		logging.File(f.ID),
		logging.Path(path))

	out, err := os.Create(path)
	if err != nil {
		return "", &Error{Op: "download", Account: c.account, Err: fmt.Errorf("failed to create file: %w", err)}
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// drop the partial file
		if rmErr := os.Remove(path); rmErr != nil {
			logger.Warn("failed to remove partial file", logging.Path(path), logging.Err(rmErr))
		}
		return "", &Error{Op: "download", Account: c.account, Err: fmt.Errorf("failed to write file: %w", err)}
	}

	logger.Info("download finished",
		logging.Path(path),
		logging.Size(n),
		logging.Status(logging.StatusSuccess))
	return path, nil
}

// DownloadMeeting fetches every recording file of a meeting into a
// subdirectory of dir named after the meeting ID, one file at a time.
// Returns the paths of the written files.
func (c *Client) DownloadMeeting(ctx context.Context, m *Meeting, dir string) ([]string, error) {
	if m == nil {
		return nil, &Error{Op: "download", Account: c.account, Err: fmt.Errorf("meeting is required")}
	}

	sub := filepath.Join(dir, strconv.FormatInt(m.ID, 10))
	paths := make([]string, 0, len(m.RecordingFiles))
	for i := range m.RecordingFiles {
		path, err := c.Download(ctx, &m.RecordingFiles[i], sub)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
