package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/galvictor/assetfetch/internal/category"
	"github.com/galvictor/assetfetch/internal/common/config"
	"github.com/galvictor/assetfetch/internal/fetcher"
	"github.com/galvictor/assetfetch/pkg/models"
	"github.com/galvictor/assetfetch/pkg/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LoadURLs reads the input JSON document, whose root must be an array of URL
// strings. Any failure here is fatal for the run: the caller aborts before a
// single directory is touched.
func LoadURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading url file %s: %w", path, err)
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("error decoding url file %s: %w", path, err)
	}

	return urls, nil
}

// Pipeline drives one run: prepare directories, then classify and fetch each
// URL strictly in order, accumulating totals as it goes.
type Pipeline struct {
	cfg     *config.DownloaderConfig
	log     *logrus.Logger
	fetcher *fetcher.Fetcher
	delay   time.Duration
}

func New(cfg *config.DownloaderConfig, log *logrus.Logger, f *fetcher.Fetcher) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		log:     log,
		fetcher: f,
		delay:   time.Duration(cfg.DelayMs) * time.Millisecond,
	}
}

// Prepare empties (or creates) every category directory. Called once per run
// before the first download.
func (p *Pipeline) Prepare() error {
	for _, c := range category.All() {
		dir := filepath.Join(p.cfg.BaseDir, c.Dir())
		p.log.WithField("dir", dir).Info("Preparing destination directory")
		if err := utils.CleanDir(p.log, dir); err != nil {
			return fmt.Errorf("error preparing directory %s: %w", dir, err)
		}
	}
	return nil
}

// Run processes every URL in order and returns the run totals. Per-item
// failures are converted into counter increments and log lines; nothing
// escapes the loop. The invariant successes+errors == len(urls) holds on
// return.
func (p *Pipeline) Run(ctx context.Context, urls []string) (*models.RunTotals, error) {
	runID := uuid.New().String()
	log := p.log.WithField("run_id", runID)

	if err := p.Prepare(); err != nil {
		return nil, err
	}

	totals := models.NewRunTotals(len(urls))

	for i, url := range urls {
		itemLog := log.WithFields(logrus.Fields{
			"index": i + 1,
			"total": len(urls),
			"url":   url,
		})
		itemLog.Info("Processing URL")

		cat, ok := category.Classify(url)
		if !ok {
			itemLog.Warn("Unrecognized file type")
			totals.AddError()
			// No network attempt was made, so no courtesy delay either.
			continue
		}

		localPath := filepath.Join(p.cfg.BaseDir, cat.Dir(), category.FilenameOf(url))
		size, err := p.fetcher.Fetch(ctx, url, localPath)
		if err != nil {
			itemLog.WithError(err).Error("Download failed")
			totals.AddError()
		} else {
			itemLog.WithFields(logrus.Fields{
				"category": cat.String(),
				"path":     localPath,
				"bytes":    size,
			}).Info("Download completed")
			totals.AddSuccess(cat, size)
		}

		// Courtesy throttle between requests, not after the last one.
		if i < len(urls)-1 {
			p.sleep(ctx)
		}
	}

	return totals, nil
}

func (p *Pipeline) sleep(ctx context.Context) {
	if p.delay <= 0 {
		return
	}
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
	}
}
