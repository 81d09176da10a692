package main

import (
	"context"

	"github.com/desertthunder/uta/internal/repositories"
	"github.com/desertthunder/uta/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a starter config.toml from the embedded example.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlainln("✓ Wrote %s", path)
	return nil
}

// SetupDatabase initializes the local cache database and its tables.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := repositories.NewSongCache(db); err != nil {
		return err
	}
	if _, err := repositories.NewHistoryRepository(db); err != nil {
		return err
	}

	r.logger.Infof("cache database ready at %s", r.config.Database.Path)
	r.writePlainln("✓ Cache database initialized: %s", r.config.Database.Path)
	return nil
}
