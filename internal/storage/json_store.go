package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "github.com/cleftcare/casecal/internal/errors"
	"github.com/cleftcare/casecal/internal/models"
)

// Store is the on-disk layout of the JSON backend.
type Store struct {
	Version  int                     `json:"version"`
	Settings models.Settings         `json:"settings"`
	Drafts   map[string]models.Draft `json:"drafts"`
}

// JSONStore keeps everything in one file, rewritten on every change.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Settings: models.DefaultSettings(),
		Drafts:   make(map[string]models.Draft),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Drafts == nil {
		s.store.Drafts = make(map[string]models.Draft)
	}
	if s.store.Settings.ScopePolicies == nil {
		s.store.Settings.ScopePolicies = map[string]string{}
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// save writes through a temp file so a crash never leaves half a document.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.Settings{}, ErrNotLoaded
	}
	return s.store.Settings.Clone(), nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Settings = settings.Clone()
	return s.save()
}

func (s *JSONStore) SaveDraft(d models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	if d.Key == "" {
		return fmt.Errorf("draft key cannot be empty")
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now()
	}
	s.store.Drafts[d.Key] = d
	return s.save()
}

func (s *JSONStore) GetDraft(key string) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.Draft{}, ErrNotLoaded
	}
	d, ok := s.store.Drafts[key]
	if !ok {
		return models.Draft{}, fmt.Errorf("%w: %s", ErrDraftNotFound, key)
	}
	return d, nil
}

func (s *JSONStore) ListDrafts(prefix string) ([]models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, ErrNotLoaded
	}
	drafts := []models.Draft{}
	for key, d := range s.store.Drafts {
		if strings.HasPrefix(key, prefix) {
			drafts = append(drafts, d)
		}
	}
	sort.Slice(drafts, func(i, j int) bool {
		if !drafts[i].UpdatedAt.Equal(drafts[j].UpdatedAt) {
			return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
		}
		return drafts[i].Key < drafts[j].Key
	})
	return drafts, nil
}

func (s *JSONStore) DeleteDraft(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Drafts[key]; !ok {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, key)
	}
	delete(s.store.Drafts, key)
	return s.save()
}
