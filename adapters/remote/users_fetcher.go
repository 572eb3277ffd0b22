// Package remote keeps the local users XML file in step with the intranet
// export. It is run from cron; the web server never fetches on its own.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"presence-analyzer/adapters/usersxml"
	apperrors "presence-analyzer/internal/errors"
	"presence-analyzer/ports"
)

// maxUsersFileSize bounds the download
const maxUsersFileSize = 32 << 20

// UsersFetcher downloads the users XML file and replaces the local copy
type UsersFetcher struct {
	URL      string
	DestPath string
	Client   *http.Client
	logger   ports.Logger
}

// NewUsersFetcher creates a fetcher with its own HTTP client
func NewUsersFetcher(url, destPath string, timeout time.Duration, logger ports.Logger) *UsersFetcher {
	return &UsersFetcher{
		URL:      url,
		DestPath: destPath,
		Client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Sync downloads the file and atomically swaps it in. The existing file is
// left untouched when the download fails or is not a users document.
func (f *UsersFetcher) Sync(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return apperrors.Wrap(err, "failed to build users XML request")
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return apperrors.ExternalServiceError("users XML", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.ExternalServiceError("users XML", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUsersFileSize))
	if err != nil {
		return apperrors.ExternalServiceError("users XML", err)
	}

	users, err := usersxml.Decode(bytes.NewReader(body))
	if err != nil {
		return apperrors.ExternalServiceError("users XML", err)
	}

	if err := writeAtomic(f.DestPath, body); err != nil {
		return apperrors.Wrapf(err, "failed to write %s", f.DestPath)
	}

	f.logger.Info("[UsersSync] %s updated from %s (%d users, %d bytes)", f.DestPath, f.URL, len(users), len(body))
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".users-*.xml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
