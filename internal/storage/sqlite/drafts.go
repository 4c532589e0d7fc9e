package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cleftcare/casecal/internal/models"
)

// timeLayout keeps a fixed width so updated_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *Store) SaveDraft(d models.Draft) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if d.Key == "" {
		return fmt.Errorf("draft key cannot be empty")
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now()
	}
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO drafts (key, data, updated_at) VALUES (?, ?, ?)",
		d.Key, string(d.Data), d.UpdatedAt.UTC().Format(timeLayout),
	)
	return err
}

func (s *Store) GetDraft(key string) (models.Draft, error) {
	if err := s.loaded(); err != nil {
		return models.Draft{}, err
	}
	row := s.db.QueryRow("SELECT key, data, updated_at FROM drafts WHERE key = ?", key)
	d, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Draft{}, fmt.Errorf("%w: %s", ErrDraftNotFound, key)
	}
	return d, err
}

func (s *Store) ListDrafts(prefix string) ([]models.Draft, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		"SELECT key, data, updated_at FROM drafts WHERE substr(key, 1, length(?)) = ? ORDER BY updated_at DESC, key",
		prefix, prefix,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drafts := []models.Draft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func (s *Store) DeleteDraft(key string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	res, err := s.db.Exec("DELETE FROM drafts WHERE key = ?", key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, key)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(row scanner) (models.Draft, error) {
	var d models.Draft
	var data, updated string
	if err := row.Scan(&d.Key, &data, &updated); err != nil {
		return models.Draft{}, err
	}
	d.Data = []byte(data)
	t, err := time.Parse(timeLayout, updated)
	if err != nil {
		return models.Draft{}, fmt.Errorf("draft %s: bad updated_at %q: %w", d.Key, updated, err)
	}
	d.UpdatedAt = t
	return d, nil
}
