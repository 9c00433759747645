package main

import (
	"context"
	"os"

	"github.com/galvictor/assetfetch/internal/archive"
	"github.com/galvictor/assetfetch/internal/common/config"
	"github.com/galvictor/assetfetch/internal/common/logger"
	"github.com/galvictor/assetfetch/internal/fetcher"
	"github.com/galvictor/assetfetch/internal/pipeline"
	"github.com/galvictor/assetfetch/internal/report"
)

func main() {
	// Load the configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	downloaderCfg := cfg.GetDownloaderConfig()

	// Initialize logger
	log := logger.New(cfg)

	log.Infof("Downloader configuration: %+v", downloaderCfg)

	// A missing or malformed url file aborts the run before any directory is
	// touched. Individual download failures never affect the exit code.
	urls, err := pipeline.LoadURLs(downloaderCfg.URLFile)
	if err != nil {
		log.WithError(err).Error("Unable to load URL list")
		os.Exit(1)
	}

	log.WithField("count", len(urls)).Info("Starting download run")

	f := fetcher.New(downloaderCfg, log)
	p := pipeline.New(downloaderCfg, log, f)

	totals, err := p.Run(context.Background(), urls)
	if err != nil {
		log.WithError(err).Error("Run aborted")
		os.Exit(1)
	}

	reporter := report.New(os.Stdout, downloaderCfg.BaseDir)
	reporter.Summary(totals)
	reporter.ListFiles()

	if totals.SuccessCount() == 0 {
		return
	}

	if archive.PromptUser(os.Stdin, os.Stdout) {
		archiver := archive.New(cfg.GetArchiveConfig(), log, downloaderCfg.BaseDir)
		archivePath, err := archiver.Create()
		if err != nil {
			log.WithError(err).Error("Archiving failed, source directories left intact")
			return
		}
		log.WithField("archive", archivePath).Info("Files archived and directories cleared")
	}
}
