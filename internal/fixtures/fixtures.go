// Package fixtures supplies the mock case records shown until a real
// backend exists.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/cleftcare/casecal/internal/logger"
	"github.com/cleftcare/casecal/internal/models"
)

//go:embed cases.json
var embedded []byte

// Load reads case records from path, or the embedded set when path is "".
// Records without an ID are given one. Malformed dates are kept as-is.
func Load(path string) ([]models.CaseRecord, error) {
	data := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixtures: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes a JSON array of case records.
func Parse(data []byte) ([]models.CaseRecord, error) {
	var records []models.CaseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if records == nil {
		records = []models.CaseRecord{}
	}

	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
	}
	if bad := Undated(records); len(bad) > 0 {
		logger.Warn("case records without a usable date", "count", len(bad))
		for _, r := range bad {
			logger.Debug("undated case", "id", r.ID, "scope", r.Scope, "date", r.Date)
		}
	}
	return records, nil
}

// Undated returns the records whose date cannot be placed on a calendar.
func Undated(records []models.CaseRecord) []models.CaseRecord {
	var out []models.CaseRecord
	for _, r := range records {
		if !r.HasValidDate() {
			out = append(out, r)
		}
	}
	return out
}
