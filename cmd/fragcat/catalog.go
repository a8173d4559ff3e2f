package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fragcat/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build the static catalog from the local dataset",
		Long: `Walks DATASET_ROOT and writes catalog/index.json plus one facet
file per dimension (notes, accords, brands, gender, times). The facet
files map each value to the document ids carrying it, so a static site
can filter without a query backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(baseURL)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Public base URL for item assets (overrides PUBLIC_BASE_URL)")

	return cmd
}

func runCatalog(baseURL string) error {
	cfg, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	if baseURL == "" {
		baseURL = cfg.Dataset.PublicBaseURL
	}

	builder := catalog.NewBuilder(cfg.Dataset.Root, baseURL, logger)

	index, facets, err := builder.Build(time.Now())
	if err != nil {
		return err
	}
	if err := builder.Write(index, facets); err != nil {
		return err
	}

	logger.Info("Catalog written",
		zap.Int("items", index.Count),
		zap.String("generated_at", index.GeneratedAt),
	)
	return nil
}
