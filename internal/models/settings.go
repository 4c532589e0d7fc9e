package models

// Settings represents application-wide settings
type Settings struct {
	Timezone      string            `json:"timezone"`       // IANA timezone name used to decide "today"
	DefaultScope  string            `json:"default_scope"`  // tab shown on start
	NoDatePolicy  string            `json:"no_date_policy"` // "month" or "all" when no day is selected
	ScopePolicies map[string]string `json:"scope_policies"` // per-scope override of NoDatePolicy
	HistoryScopes []string          `json:"history_scopes"` // scopes whose history view shows every status
}
