package system

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/fixtures"
	"github.com/cleftcare/casecal/internal/listfilter"
	"github.com/cleftcare/casecal/internal/storage/sqlite"
	"github.com/cleftcare/casecal/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	advisory bool // a failure is reported as a warning
}

var checks = []check{
	{name: "Draft store reachable", run: checkStoreReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Case scopes", run: checkScopes},
	{name: "Case dates", run: checkCaseDates, advisory: true},
	{name: "Case statuses", run: checkStatuses, advisory: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsDB && !reachable {
			fmt.Fprintf(out, "⊘ %s: SKIPPED (draft store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(out, "✓ %s: OK\n", c.name)
		case c.advisory:
			fmt.Fprintf(out, "⚠ %s: WARNING\n", c.name)
			fmt.Fprintf(out, "   %v\n", err)
		default:
			report(out, c.name, err)
			hasError = true
			if c.name == checks[0].name {
				reachable = false
			}
		}
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func report(out io.Writer, name string, err error) {
	fmt.Fprintf(out, "❌ %s: FAIL\n", name)
	fmt.Fprintf(out, "   Error: %v\n", err)
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load draft store: %w", err)
	}
	if store, ok := ctx.Store.(*sqlite.Store); ok {
		db := store.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// JSON store has no schema
		return nil
	}
	current, latest, err := store.SchemaVersion(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", current, latest, constants.AppName)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("unknown time zone %q", settings.Timezone)
	}
	if err := cli.ValidateScope(settings.DefaultScope); err != nil {
		return fmt.Errorf("default scope: %w", err)
	}
	for scope := range settings.ScopePolicies {
		if err := cli.ValidateScope(scope); err != nil {
			return fmt.Errorf("scope policy: %w", err)
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := utils.LoadLocation(ctx.Settings.Timezone); err != nil {
		return err
	}
	return nil
}

func checkScopes(ctx *cli.Context) error {
	for _, r := range ctx.Cases {
		if err := cli.ValidateScope(r.Scope); err != nil || r.Scope == constants.ScopeAll {
			return fmt.Errorf("case %s has unknown scope %q", r.ID, r.Scope)
		}
	}
	return nil
}

func checkCaseDates(ctx *cli.Context) error {
	if undated := fixtures.Undated(ctx.Cases); len(undated) > 0 {
		return fmt.Errorf("%d of %d cases have no usable date and appear only under \"%s\"", len(undated), len(ctx.Cases), utils.ThaiDateLabel(constants.UnknownDateKey))
	}
	return nil
}

func checkStatuses(ctx *cli.Context) error {
	statuses := ctx.Statuses()
	unknown := map[string]bool{}
	for _, r := range ctx.Cases {
		if statuses.Resolve(r.Scope, r.Status).Category == listfilter.CategoryOther {
			unknown[r.Scope+"/"+r.Status] = true
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%d status value(s) are not in the status table and show as \"%s\"", len(unknown), listfilter.CategoryLabels[listfilter.CategoryOther])
	}
	return nil
}
