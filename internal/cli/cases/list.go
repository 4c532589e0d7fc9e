package cases

import (
	"encoding/json"
	"fmt"

	"github.com/cleftcare/casecal/internal/calendar"
	"github.com/cleftcare/casecal/internal/calview"
	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/cli/render"
	"github.com/cleftcare/casecal/internal/listfilter"
	"github.com/cleftcare/casecal/internal/models"
	"github.com/cleftcare/casecal/internal/utils"
)

type ListCmd struct {
	Scope   string `short:"s" help:"Scope to list (all|appointment|referral|homevisit|telemed). Defaults to the configured scope."`
	Status  string `help:"Status filter: a category (pending|inprogress|completed|cancelled|other) or a raw status." default:"all"`
	Query   string `short:"q" help:"Only records whose patient name, HN or ID contains this text."`
	Date    string `short:"d" help:"Only this day (YYYY-MM-DD)." xor:"range"`
	Month   string `short:"m" help:"Only this month (YYYY-MM)." xor:"range"`
	All     bool   `short:"a" help:"Ignore dates entirely." xor:"range"`
	History bool   `short:"H" help:"History view: group by day, most recent first."`
	JSON    bool   `help:"Print matching records as JSON."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	scope := scopeOrDefault(c.Scope, ctx)
	if err := cli.ValidateScope(scope); err != nil {
		return err
	}

	records, err := c.filter(ctx, scope)
	if err != nil {
		return err
	}

	out := ctx.Writer()
	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, render.MutedStyle.Render("ไม่พบรายการ"))
		return nil
	}

	if c.History {
		groups := listfilter.GroupByDate(records, models.CaseDate)
		fmt.Fprint(out, render.Groups(groups, ctx.Resolver(), ctx.Today))
		return nil
	}
	fmt.Fprintln(out, render.CaseTable(records, ctx.Resolver(), ctx.Today))
	fmt.Fprintf(out, "%d รายการ\n", len(records))
	return nil
}

func (c *ListCmd) filter(ctx *cli.Context, scope string) ([]models.CaseRecord, error) {
	var month calendar.Month
	switch {
	case c.Date != "":
		day, ok := utils.ParseDay(c.Date)
		if !ok {
			return nil, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", c.Date)
		}
		month = calendar.MonthOf(day)
	case c.Month != "":
		m, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return nil, fmt.Errorf("invalid --month: %w", err)
		}
		month = m
	}

	view := ctx.NewView(scope, month, calview.Events{})
	view.SetStatusFilter(c.Status)
	view.SetSearch(c.Query)
	view.SetHistory(c.History)

	switch {
	case c.Date != "":
		view.SelectDate(c.Date)
	case c.Month != "":
		// An explicit month wins over an "all" no-date policy.
		s := view.ListState()
		s.SelectedDate = ""
		s.Month = month.String()
		return view.Filter().Apply(view.Items(), s), nil
	case c.All:
		view.ShowAll()
	}
	return view.FilteredItems(), nil
}
