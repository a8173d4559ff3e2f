package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fragcat/internal/dataset"
	"fragcat/internal/fetch"
	"fragcat/internal/scrape"
	"fragcat/internal/store"
)

func newScrapeCmd() *cobra.Command {
	var (
		force    bool
		noImages bool
	)

	cmd := &cobra.Command{
		Use:   "scrape [URL...]",
		Short: "Scrape detail pages into the local dataset",
		Long: `Renders each detail page in a headless browser, extracts the
canonical record (name, brand, gender, accords, note pyramid, occasion
scores) and writes it to DATASET_ROOT along with the item thumbnail.

Pages come from the arguments, SCRAPE_URLS, or SCRAPE_URLS_FILE. With
Redis enabled, pages scraped by earlier runs are skipped unless --force
is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(args, force, noImages)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-scrape pages already in the seen registry")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "Skip thumbnail downloads")

	return cmd
}

func runScrape(args []string, force, noImages bool) error {
	cfg, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	urls, err := cfg.ScrapeURLs()
	if err != nil {
		return err
	}
	urls = append(urls, args...)
	if len(urls) == 0 {
		return fmt.Errorf("no pages to scrape: pass URLs or set SCRAPE_URLS / SCRAPE_URLS_FILE")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	browser, err := fetch.NewBrowser(cfg.Browser.Headless, cfg.Browser.ProxyURL)
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer browser.Close()

	opts := scrape.RunnerOptions{
		Concurrency: cfg.Scrape.Concurrency,
		Force:       force,
	}
	if !noImages {
		opts.Images = fetch.NewImageDownloader(logger)
	}
	if cfg.Redis.Enabled {
		cache, err := store.NewCache(store.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return err
		}
		defer cache.Close()
		opts.Seen = cache
	}

	runner := scrape.NewRunner(
		fetch.NewBrowserFetcher(browser, cfg.Scrape.PageTimeout, logger),
		dataset.NewWriter(cfg.Dataset.Root, logger),
		logger,
		opts,
	)

	result := runner.Run(ctx, urls)

	if len(result.Failures) > 0 {
		for _, failure := range result.Failures {
			logger.Error("Page failed",
				zap.String("url", failure.URL),
				zap.Error(failure.Err))
		}
		return fmt.Errorf("%d of %d pages failed", len(result.Failures), len(urls))
	}
	return nil
}
