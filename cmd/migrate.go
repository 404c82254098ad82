package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"novelhub/internal/repository"
	"novelhub/internal/repository/storefactory"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables or indexes for the configured store",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, store repository.Store) error {
		log.Info().Str("driver", GetConfig().Database.Driver).Msg("store migrated")
		return nil
	})
}

// withStore 打开存储并执行迁移，然后运行 fn
func withStore(parent context.Context, fn func(ctx context.Context, store repository.Store) error) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	store, err := storefactory.NewStore(cfg)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, time.Minute)
	defer cancel()
	defer func() {
		if err := store.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate store: %w", err)
	}
	return fn(ctx, store)
}
