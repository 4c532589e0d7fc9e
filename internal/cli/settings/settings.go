package settings

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string           `help:"IANA timezone used to decide today."`
	DefaultScope  *string           `help:"Scope shown on start (all|appointment|referral|homevisit|telemed)."`
	NoDatePolicy  *string           `help:"What the list shows with no day selected (month|all)."`
	ScopePolicy   map[string]string `help:"Per-scope no-date policy, e.g. telemed=all. An empty value removes the override."`
	HistoryScopes *string           `help:"Comma-separated scopes whose history view ignores the status filter."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	out := ctx.Writer()

	if c.List {
		fmt.Fprintln(out, "Current Settings:")
		fmt.Fprintf(out, "  Timezone:        %s\n", settings.Timezone)
		fmt.Fprintf(out, "  Default Scope:   %s\n", settings.DefaultScope)
		fmt.Fprintf(out, "  No-Date Policy:  %s\n", settings.NoDatePolicy)
		fmt.Fprintf(out, "  History Scopes:  %s\n", strings.Join(settings.HistoryScopes, ", "))
		if len(settings.ScopePolicies) > 0 {
			fmt.Fprintln(out, "\nPer-Scope Policies:")
			scopes := make([]string, 0, len(settings.ScopePolicies))
			for s := range settings.ScopePolicies {
				scopes = append(scopes, s)
			}
			sort.Strings(scopes)
			for _, s := range scopes {
				fmt.Fprintf(out, "  %-15s %s\n", s+":", settings.ScopePolicies[s])
			}
		}
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("unknown time zone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultScope != nil {
		if err := cli.ValidateScope(*c.DefaultScope); err != nil {
			return err
		}
		settings.DefaultScope = *c.DefaultScope
		updated = true
	}
	if c.NoDatePolicy != nil {
		if err := validatePolicy(*c.NoDatePolicy); err != nil {
			return err
		}
		settings.NoDatePolicy = *c.NoDatePolicy
		updated = true
	}
	for scope, policy := range c.ScopePolicy {
		if err := cli.ValidateScope(scope); err != nil {
			return err
		}
		if policy == "" {
			delete(settings.ScopePolicies, scope)
		} else {
			if err := validatePolicy(policy); err != nil {
				return err
			}
			if settings.ScopePolicies == nil {
				settings.ScopePolicies = map[string]string{}
			}
			settings.ScopePolicies[scope] = policy
		}
		updated = true
	}
	if c.HistoryScopes != nil {
		var scopes []string
		for _, s := range strings.Split(*c.HistoryScopes, ",") {
			s = strings.TrimSpace(s)
			if s == "" || slices.Contains(scopes, s) {
				continue
			}
			if err := cli.ValidateScope(s); err != nil {
				return err
			}
			scopes = append(scopes, s)
		}
		settings.HistoryScopes = scopes
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Fprintln(out, "Settings updated successfully.")
	} else {
		fmt.Fprintln(out, "No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

func validatePolicy(p string) error {
	if p != constants.NoDatePolicyMonth && p != constants.NoDatePolicyAll {
		return fmt.Errorf("unknown no-date policy %q (expected month or all)", p)
	}
	return nil
}
