package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/galvictor/assetfetch/internal/common/config"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Fetcher downloads a single file per call with a streaming HTTP GET.
type Fetcher struct {
	client      *http.Client
	log         *logrus.Logger
	userAgent   string
	progressOut io.Writer
}

func New(cfg *config.DownloaderConfig, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		log:         log,
		userAgent:   cfg.UserAgent,
		progressOut: os.Stderr,
	}
}

// SetProgressOutput redirects the progress bar, mainly for tests.
func (f *Fetcher) SetProgressOutput(w io.Writer) {
	f.progressOut = w
}

// Fetch downloads url into localPath, streaming the body to disk while the
// progress bar tracks received bytes against the declared content length
// (plain byte counter when the length is unknown). The destination is
// overwritten unconditionally; a partially written file left by a mid-stream
// failure is removed. Returns the on-disk size, re-measured after the write.
func (f *Fetcher) Fetch(ctx context.Context, url string, localPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("error building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error downloading file: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("unexpected status %s downloading %s", resp.Status, url)
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return 0, fmt.Errorf("error creating directory: %v", err)
	}

	out, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("error creating file: %v", err)
	}

	bar := progressbar.NewOptions64(
		resp.ContentLength,
		progressbar.OptionSetWriter(f.progressOut),
		progressbar.OptionSetDescription(filepath.Base(localPath)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)

	_, err = io.Copy(io.MultiWriter(out, bar), resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// A truncated file must not masquerade as a complete download.
		if rmErr := os.Remove(localPath); rmErr != nil {
			f.log.WithError(rmErr).WithField("path", localPath).Warn("Failed to remove partial file")
		}
		return 0, fmt.Errorf("error writing to file: %v", err)
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return 0, fmt.Errorf("error measuring downloaded file: %v", err)
	}

	return info.Size(), nil
}
