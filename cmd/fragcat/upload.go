package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fragcat/internal/store"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload the local dataset to the document store",
		Long: `Flattens every record in DATASET_ROOT into the document shape the
consuming application queries and upserts it into PostgreSQL, keyed by
document id. Already-uploaded documents are replaced in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload()
		},
	}
	return cmd
}

func runUpload() error {
	cfg, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Postgres.Password == "" {
		return fmt.Errorf("POSTGRES_PASSWORD is required for upload")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := store.NewPostgresStore(store.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
		Table:    cfg.Postgres.Table,
	}, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	uploader := store.NewUploader(cfg.Dataset.Root, pg, logger)
	uploaded, err := uploader.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Upload complete", zap.Int("documents", uploaded))
	return nil
}
