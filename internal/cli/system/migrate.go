package system

import (
	"context"
	"fmt"

	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/storage/sqlite"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage")
	}
	if err := store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	count, err := store.Migrate(context.Background())
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Fprintln(ctx.Writer(), "No migrations to apply. Database is up to date.")
	} else {
		fmt.Fprintf(ctx.Writer(), "Successfully applied %d migration(s).\n", count)
	}
	return nil
}
