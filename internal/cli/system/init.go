package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing draft store before initialization."`
	Source string `help:"Existing draft store (.db or .json) to copy settings and drafts from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Fprintf(ctx.Writer(), "Deleted existing store at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "Initialized casecal storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(ctx.Writer(), "Copying from: %s\n", c.Source)
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Fprintln(ctx.Writer(), "Copy completed successfully!")
	}

	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context, sourcePath string) error {
	source := storage.NewProvider(sourcePath)
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	settings, err := source.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	drafts, err := source.ListDrafts("")
	if err != nil {
		return fmt.Errorf("failed to get drafts from source: %w", err)
	}
	for _, d := range drafts {
		if err := ctx.Store.SaveDraft(d); err != nil {
			return fmt.Errorf("failed to save draft %s: %w", d.Key, err)
		}
	}
	fmt.Fprintf(ctx.Writer(), "    Copied %d drafts\n", len(drafts))
	return nil
}
