package listfilter

import (
	"strings"

	"github.com/cleftcare/casecal/internal/constants"
)

// Category is the display bucket a raw status resolves to.
type Category string

const (
	CategoryPending    Category = "pending"
	CategoryInProgress Category = "inprogress"
	CategoryCompleted  Category = "completed"
	CategoryCancelled  Category = "cancelled"
	CategoryOther      Category = "other"
)

// categoryOrder fixes the order filter options are offered in.
var categoryOrder = []Category{
	CategoryPending,
	CategoryInProgress,
	CategoryCompleted,
	CategoryCancelled,
	CategoryOther,
}

// CategoryLabels are the Thai names of each bucket.
var CategoryLabels = map[Category]string{
	CategoryPending:    "รอดำเนินการ",
	CategoryInProgress: "กำลังดำเนินการ",
	CategoryCompleted:  "เสร็จสิ้น",
	CategoryCancelled:  "ยกเลิก/ไม่สำเร็จ",
	CategoryOther:      "อื่นๆ",
}

// StatusEntry is what a raw status means within one scope.
type StatusEntry struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
}

// StatusMap holds one status vocabulary per scope: scope -> raw status -> entry.
type StatusMap map[string]map[string]StatusEntry

// Resolve looks up raw within scope. Lookups fall back to a case-insensitive
// match; statuses missing from the table resolve to CategoryOther labelled
// with the raw value.
func (m StatusMap) Resolve(scope, raw string) StatusEntry {
	table := m[scope]
	if e, ok := table[raw]; ok {
		return e
	}
	for k, e := range table {
		if strings.EqualFold(k, raw) {
			return e
		}
	}
	label := raw
	if label == "" {
		label = "ไม่ระบุสถานะ"
	}
	return StatusEntry{Category: CategoryOther, Label: label}
}

// FilterOptions returns the status filter values offered for scope:
// constants.StatusAll followed by each category the scope's table uses.
func (m StatusMap) FilterOptions(scope string) []string {
	used := make(map[Category]bool)
	for _, e := range m[scope] {
		used[e.Category] = true
	}
	if scope == constants.ScopeAll || scope == "" {
		for _, table := range m {
			for _, e := range table {
				used[e.Category] = true
			}
		}
	}

	opts := []string{constants.StatusAll}
	for _, c := range categoryOrder {
		if used[c] {
			opts = append(opts, string(c))
		}
	}
	return opts
}

// DefaultStatusMap returns the vocabularies of the four scheduling screens.
func DefaultStatusMap() StatusMap {
	return StatusMap{
		constants.ScopeHomeVisit: {
			"Pending":    {CategoryPending, "รอพิจารณา"},
			"WaitVisit":  {CategoryPending, "รอเยี่ยม"},
			"InProgress": {CategoryInProgress, "กำลังเยี่ยม"},
			"Completed":  {CategoryCompleted, "เยี่ยมแล้ว"},
			"Rejected":   {CategoryCancelled, "ปฏิเสธ"},
			"NotHome":    {CategoryCancelled, "ไม่พบผู้ป่วย"},
			"NotAllowed": {CategoryCancelled, "ไม่อนุญาตให้เยี่ยม"},
		},
		constants.ScopeTelemed: {
			"Scheduled": {CategoryPending, "นัดหมายแล้ว"},
			"Completed": {CategoryCompleted, "ปรึกษาแล้ว"},
			"Cancelled": {CategoryCancelled, "ยกเลิก"},
		},
		constants.ScopeAppointment: {
			"pending":     {CategoryPending, "รอยืนยัน"},
			"confirmed":   {CategoryPending, "ยืนยันแล้ว"},
			"inprogress":  {CategoryInProgress, "กำลังรักษา"},
			"in_progress": {CategoryInProgress, "กำลังรักษา"},
			"completed":   {CategoryCompleted, "เสร็จสิ้น"},
			"cancelled":   {CategoryCancelled, "ยกเลิก"},
			"missed":      {CategoryCancelled, "ไม่มาตามนัด"},
		},
		constants.ScopeReferral: {
			"pending":   {CategoryPending, "รอตอบรับ"},
			"accepted":  {CategoryInProgress, "ตอบรับแล้ว"},
			"rejected":  {CategoryCancelled, "ปฏิเสธ"},
			"completed": {CategoryCompleted, "เสร็จสิ้น"},
		},
	}
}
