package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/utils"
)

// Draft is an opaque JSON document saved under a key.
type Draft struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// HomeVisitDraft is an unfinished home-visit form.
type HomeVisitDraft struct {
	ID          string    `json:"id"`
	HN          string    `json:"hn"`
	PatientName string    `json:"patientName"`
	VisitDate   string    `json:"visitDate"` // YYYY-MM-DD
	Status      string    `json:"status"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Key returns the draft store key of the form.
func (d HomeVisitDraft) Key() string {
	return constants.DraftPrefixHomeVisit + d.ID
}

func (d *HomeVisitDraft) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("draft id cannot be empty")
	}
	if strings.TrimSpace(d.PatientName) == "" && strings.TrimSpace(d.HN) == "" {
		return fmt.Errorf("patient name or HN is required")
	}
	if d.VisitDate != "" {
		if _, ok := utils.DayKey(d.VisitDate); !ok {
			return fmt.Errorf("invalid visit date %q (expected YYYY-MM-DD)", d.VisitDate)
		}
	}
	return nil
}

// ToCase renders the draft as a home-visit record so it can be previewed
// alongside scheduled visits.
func (d HomeVisitDraft) ToCase() CaseRecord {
	return CaseRecord{
		ID:          d.ID,
		HN:          d.HN,
		PatientName: d.PatientName,
		Scope:       constants.ScopeHomeVisit,
		Status:      d.Status,
		Date:        d.VisitDate,
		Note:        d.Note,
	}
}
