package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cleftcare/casecal/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Per-scope policies are stored as "policy.<scope>" keys.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch {
		case key == constants.SettingTimezone:
			settings.Timezone = value
		case key == constants.SettingDefaultScope:
			settings.DefaultScope = value
		case key == constants.SettingNoDatePolicy:
			if value != constants.NoDatePolicyMonth && value != constants.NoDatePolicyAll {
				return Settings{}, fmt.Errorf("parsing %s: unknown policy %q", key, value)
			}
			settings.NoDatePolicy = value
		case key == constants.SettingHistoryScopes:
			settings.HistoryScopes = nil
			for _, s := range strings.Split(value, ",") {
				if s = strings.TrimSpace(s); s != "" {
					settings.HistoryScopes = append(settings.HistoryScopes, s)
				}
			}
		case strings.HasPrefix(key, constants.SettingScopePolicyPrefix):
			if value != constants.NoDatePolicyMonth && value != constants.NoDatePolicyAll {
				return Settings{}, fmt.Errorf("parsing %s: unknown policy %q", key, value)
			}
			settings.ScopePolicies[strings.TrimPrefix(key, constants.SettingScopePolicyPrefix)] = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	history := append([]string(nil), settings.HistoryScopes...)
	sort.Strings(history)

	m := map[string]string{
		constants.SettingTimezone:      settings.Timezone,
		constants.SettingDefaultScope:  settings.DefaultScope,
		constants.SettingNoDatePolicy:  settings.NoDatePolicy,
		constants.SettingHistoryScopes: strings.Join(history, ","),
	}
	for scope, policy := range settings.ScopePolicies {
		m[constants.SettingScopePolicyPrefix+scope] = policy
	}
	return m
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		Timezone:      constants.DefaultTimezone,
		DefaultScope:  constants.DefaultScope,
		NoDatePolicy:  constants.DefaultNoDatePolicy,
		ScopePolicies: map[string]string{},
		HistoryScopes: append([]string(nil), constants.DefaultHistoryScopes...),
	}
}

// PolicyFor returns the no-date policy of scope.
func (s Settings) PolicyFor(scope string) string {
	if p, ok := s.ScopePolicies[scope]; ok && p != "" {
		return p
	}
	if s.NoDatePolicy == "" {
		return constants.DefaultNoDatePolicy
	}
	return s.NoDatePolicy
}

// HistoryScopeSet returns HistoryScopes as a lookup table.
func (s Settings) HistoryScopeSet() map[string]bool {
	set := make(map[string]bool, len(s.HistoryScopes))
	for _, scope := range s.HistoryScopes {
		set[scope] = true
	}
	return set
}

// Clone returns a copy that shares no maps or slices with s.
func (s Settings) Clone() Settings {
	out := s
	out.ScopePolicies = make(map[string]string, len(s.ScopePolicies))
	for k, v := range s.ScopePolicies {
		out.ScopePolicies[k] = v
	}
	out.HistoryScopes = append([]string(nil), s.HistoryScopes...)
	return out
}
