package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fragcat/internal/config"
	"fragcat/internal/util"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "fragcat",
		Short:   "Fragrance catalog scraper and publisher",
		Version: version,
		Long: `fragcat scrapes fragrance detail pages into a local dataset of
canonical perfume records, builds a static catalog (index plus facet
files) from that dataset, and uploads flattened documents to the
serving store.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newScrapeCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newUploadCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the environment config and builds the logger every command
// shares. The returned cleanup flushes buffered log entries.
func setup() (*config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	cleanup := func() { _ = logger.Sync() }
	return cfg, logger, cleanup, nil
}
