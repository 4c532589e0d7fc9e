package cases

import (
	"fmt"

	"github.com/cleftcare/casecal/internal/calendar"
	"github.com/cleftcare/casecal/internal/calview"
	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/cli/render"
	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/models"
)

type CalendarCmd struct {
	Month  string `short:"m" help:"Month to show (YYYY-MM). Defaults to the current month."`
	Scope  string `short:"s" help:"Scope to count (all|appointment|referral|homevisit|telemed). Defaults to the configured scope."`
	Status string `help:"Status filter: a category (pending|inprogress|completed|cancelled|other) or a raw status." default:"all"`
	Query  string `short:"q" help:"Only count records whose patient name, HN or ID contains this text."`
	Select string `help:"Day to highlight (YYYY-MM-DD)."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	scope := scopeOrDefault(c.Scope, ctx)
	if err := cli.ValidateScope(scope); err != nil {
		return err
	}

	var month calendar.Month
	if c.Month != "" {
		m, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return fmt.Errorf("invalid --month: %w", err)
		}
		month = m
	}

	view := ctx.NewView(scope, month, calview.Events{})
	view.SetStatusFilter(c.Status)
	view.SetSearch(c.Query)
	if c.Select != "" && !view.SelectDate(c.Select) {
		return fmt.Errorf("--select %s is not a day of %s", c.Select, view.State().Month)
	}

	grid := view.Grid()
	out := ctx.Writer()
	fmt.Fprintln(out, render.Calendar(grid, render.CalendarOptions{HideCounts: scope == constants.ScopeAll}))
	fmt.Fprintf(out, "\n%s: %d รายการ\n", models.CaseRecord{Scope: scope}.ScopeLabel(), grid.Total())

	if undated := undatedCount(view); undated > 0 {
		fmt.Fprintln(out, render.WarningStyle.Render(fmt.Sprintf("%d รายการไม่ระบุวันที่ (ไม่แสดงในปฏิทิน)", undated)))
	}
	return nil
}

// undatedCount counts records that match every filter but cannot be placed
// on the grid.
func undatedCount(view *calview.View[models.CaseRecord]) int {
	s := view.ListState()
	n := 0
	for _, r := range view.Items() {
		if !r.HasValidDate() && view.Filter().MatchExceptDate(r, s) {
			n++
		}
	}
	return n
}

func scopeOrDefault(scope string, ctx *cli.Context) string {
	if scope != "" {
		return scope
	}
	if ctx.Settings.DefaultScope != "" {
		return ctx.Settings.DefaultScope
	}
	return models.DefaultSettings().DefaultScope
}
