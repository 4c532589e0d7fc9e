// Package storage persists drafts and settings. Case records themselves are
// read-only fixtures and never pass through a Provider.
package storage

import (
	"path/filepath"
	"strings"

	"github.com/cleftcare/casecal/internal/models"
	"github.com/cleftcare/casecal/internal/storage/sqlite"
)

var (
	// ErrDraftNotFound is returned when no draft exists under a key.
	ErrDraftNotFound = sqlite.ErrDraftNotFound
	// ErrNotLoaded is returned when a store is used before Init or Load.
	ErrNotLoaded     = sqlite.ErrNotLoaded
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Drafts
	SaveDraft(models.Draft) error
	GetDraft(key string) (models.Draft, error)
	// ListDrafts returns the drafts whose key starts with prefix, most
	// recently updated first.
	ListDrafts(prefix string) ([]models.Draft, error)
	DeleteDraft(key string) error

	// Utils
	GetConfigPath() string
}

// NewProvider picks a backend from the file extension of path: ".json"
// selects the JSON file store, anything else SQLite.
func NewProvider(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return sqlite.NewStore(path)
}
