package models

import (
	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/utils"
)

// CaseRecord is one scheduled item of a patient's care: an appointment,
// referral, home visit or tele-consultation.
type CaseRecord struct {
	ID          string `json:"id"`
	HN          string `json:"hn"` // hospital number
	PatientName string `json:"patientName"`
	Scope       string `json:"scope"`
	Status      string `json:"status"`
	Date        string `json:"date"`           // YYYY-MM-DD or RFC3339, may be malformed
	Time        string `json:"time,omitempty"` // HH:MM
	Provider    string `json:"provider,omitempty"`
	Location    string `json:"location,omitempty"`
	Note        string `json:"note,omitempty"`
}

// CaseDate is the date accessor used by calendar and list views.
func CaseDate(c CaseRecord) string { return c.Date }

// CaseScope returns the scheduling screen the record belongs to.
func CaseScope(c CaseRecord) string { return c.Scope }

// CaseStatus returns the raw status string.
func CaseStatus(c CaseRecord) string { return c.Status }

// CaseSearchFields lists the fields free-text search looks at.
func CaseSearchFields(c CaseRecord) []string {
	return []string{c.PatientName, c.HN, c.ID}
}

// ScopeLabel returns the Thai tab title of the record's scope.
func (c CaseRecord) ScopeLabel() string {
	if l, ok := constants.ScopeLabels[c.Scope]; ok {
		return l
	}
	return c.Scope
}

// DayKey returns the record's day, or constants.UnknownDateKey.
func (c CaseRecord) DayKey() string {
	if k, ok := utils.DayKey(c.Date); ok {
		return k
	}
	return constants.UnknownDateKey
}

// HasValidDate reports whether the record's date can be placed on a calendar.
func (c CaseRecord) HasValidDate() bool {
	_, ok := utils.DayKey(c.Date)
	return ok
}
