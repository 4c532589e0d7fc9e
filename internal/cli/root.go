package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/cleftcare/casecal/internal/calendar"
	"github.com/cleftcare/casecal/internal/calview"
	"github.com/cleftcare/casecal/internal/cli/render"
	"github.com/cleftcare/casecal/internal/constants"
	apperrors "github.com/cleftcare/casecal/internal/errors"
	"github.com/cleftcare/casecal/internal/listfilter"
	"github.com/cleftcare/casecal/internal/logger"
	"github.com/cleftcare/casecal/internal/models"
	"github.com/cleftcare/casecal/internal/storage"
	"github.com/cleftcare/casecal/internal/utils"
)

// Context is shared by every command.
type Context struct {
	Store    storage.Provider
	Settings models.Settings
	Cases    []models.CaseRecord
	Today    time.Time // midnight UTC of the current day in Settings.Timezone
	Out      io.Writer
}

// Writer is where commands print, stdout unless Out is set.
func (c *Context) Writer() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// Statuses is the status table shared by every view.
func (c *Context) Statuses() listfilter.StatusMap {
	return listfilter.DefaultStatusMap()
}

// CaseFilter configures a list filter over case records.
func (c *Context) CaseFilter() listfilter.Config[models.CaseRecord] {
	return listfilter.Config[models.CaseRecord]{
		DateOf:        models.CaseDate,
		ScopeOf:       models.CaseScope,
		StatusOf:      models.CaseStatus,
		Searchable:    models.CaseSearchFields,
		Statuses:      c.Statuses(),
		HistoryScopes: c.Settings.HistoryScopeSet(),
	}
}

// NewView builds a calendar and list view over the loaded cases. A zero
// month opens on the month of Today.
func (c *Context) NewView(scope string, month calendar.Month, events calview.Events) *calview.View[models.CaseRecord] {
	policies := make(map[string]calview.Policy, len(constants.Scopes)+1)
	for _, s := range append([]string{constants.ScopeAll}, constants.Scopes...) {
		policies[s] = calview.ParsePolicy(c.Settings.PolicyFor(s))
	}
	return calview.New(c.Cases, calview.Options[models.CaseRecord]{
		Filter:        c.CaseFilter(),
		Today:         c.Today,
		Month:         month,
		Scope:         scope,
		Policy:        calview.ParsePolicy(c.Settings.NoDatePolicy),
		ScopePolicies: policies,
		Events:        events,
	})
}

// Resolver returns the status lookup used when rendering rows.
func (c *Context) Resolver() render.Resolver {
	statuses := c.Statuses()
	return func(r models.CaseRecord) listfilter.StatusEntry {
		return statuses.Resolve(r.Scope, r.Status)
	}
}

// ValidateScope accepts the known scopes plus "all".
func ValidateScope(scope string) error {
	if scope == constants.ScopeAll || slices.Contains(constants.Scopes, scope) {
		return nil
	}
	return fmt.Errorf("unknown scope %q (expected one of all, %v)", scope, constants.Scopes)
}

// LoadSettings reads stored settings, falling back to defaults when the
// store has not been initialized.
func LoadSettings(store storage.Provider) (models.Settings, error) {
	if err := store.Load(); err != nil {
		if errors.Is(err, apperrors.ErrNotInitialized) {
			logger.Debug("draft store not initialized, using default settings", "path", store.GetConfigPath())
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, err
	}
	return store.GetSettings()
}

// ResolveToday returns the current day in timezone, or override when it is a
// valid YYYY-MM-DD.
func ResolveToday(timezone, override string) (time.Time, error) {
	if override != "" {
		day, ok := utils.ParseDay(override)
		if !ok {
			return time.Time{}, fmt.Errorf("invalid --today %q (expected YYYY-MM-DD)", override)
		}
		return day, nil
	}
	return utils.TodayInTimezone(timezone)
}
