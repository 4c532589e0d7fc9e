package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/models"
	"github.com/cleftcare/casecal/internal/storage"
	"github.com/cleftcare/casecal/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)

	ctx := &cli.Context{
		Store: store,
		Out:   &bytes.Buffer{},
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, dbPath, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(ctx.Out.(*bytes.Buffer).String(), "Initialized casecal storage at") {
		t.Errorf("unexpected output: %s", ctx.Out)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}

	settings, _ := ctx.Store.GetSettings()
	settings.DefaultScope = "telemed"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	// Run init second time - should be idempotent
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
	got, _ := ctx.Store.GetSettings()
	if got.DefaultScope != "telemed" {
		t.Errorf("second init reset settings: default scope = %q", got.DefaultScope)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	settings, _ := ctx.Store.GetSettings()
	settings.DefaultScope = "telemed"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	if err := ctx.Store.SaveDraft(models.Draft{Key: "homevisit-draft:1", Data: []byte(`{}`), UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("failed to save draft: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not recreated at %s", dbPath)
	}
	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to read settings: %v", err)
	}
	if got.DefaultScope != models.DefaultSettings().DefaultScope {
		t.Errorf("default scope = %q after force, want the default", got.DefaultScope)
	}
	drafts, _ := ctx.Store.ListDrafts("")
	if len(drafts) != 0 {
		t.Errorf("force init kept %d drafts", len(drafts))
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Errorf("force init with non-existent database failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_FromSource(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "old.json")
	src := storage.NewProvider(srcPath)
	if err := src.Init(); err != nil {
		t.Fatalf("failed to init source: %v", err)
	}
	settings := models.DefaultSettings()
	settings.NoDatePolicy = "all"
	if err := src.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save source settings: %v", err)
	}
	for _, key := range []string{"homevisit-draft:a", "homevisit-draft:b"} {
		if err := src.SaveDraft(models.Draft{Key: key, Data: []byte(`{"id":"x"}`), UpdatedAt: time.Now()}); err != nil {
			t.Fatalf("failed to save source draft: %v", err)
		}
	}
	src.Close()

	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init from source failed: %v", err)
	}

	got, _ := ctx.Store.GetSettings()
	if got.NoDatePolicy != "all" {
		t.Errorf("no-date policy = %q, want copied value", got.NoDatePolicy)
	}
	drafts, _ := ctx.Store.ListDrafts("homevisit-draft:")
	if len(drafts) != 2 {
		t.Errorf("copied %d drafts, want 2", len(drafts))
	}
}

func TestInitCmd_ForceSameSource(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("force init with itself as source should fail")
	}
}
