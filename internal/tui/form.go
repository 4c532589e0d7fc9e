package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/listfilter"
	"github.com/cleftcare/casecal/internal/utils"
)

// DraftFormModel backs the home-visit draft form.
type DraftFormModel struct {
	HN          string
	PatientName string
	VisitDate   string
	Status      string
	Note        string
}

// homeVisitStatuses lists the raw home-visit statuses offered by the form,
// in a fixed order.
var homeVisitStatuses = []string{"Pending", "WaitVisit", "InProgress", "Completed", "NotHome", "NotAllowed", "Rejected"}

// NewDraftForm builds the form for a new home-visit draft.
func NewDraftForm(fm *DraftFormModel, statuses listfilter.StatusMap) *huh.Form {
	options := make([]huh.Option[string], 0, len(homeVisitStatuses))
	for _, s := range homeVisitStatuses {
		options = append(options, huh.NewOption(statuses.Resolve(constants.ScopeHomeVisit, s).Label, s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("HN").
				Value(&fm.HN),
			huh.NewInput().
				Title("ชื่อผู้ป่วย").
				Value(&fm.PatientName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" && strings.TrimSpace(fm.HN) == "" {
						return fmt.Errorf("patient name or HN is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("วันที่เยี่ยม (YYYY-MM-DD)").
				Value(&fm.VisitDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, ok := utils.DayKey(s); !ok {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("สถานะ").
				Options(options...).
				Value(&fm.Status),
			huh.NewText().
				Title("บันทึก").
				Value(&fm.Note),
		),
	).WithTheme(huh.ThemeDracula())
}
