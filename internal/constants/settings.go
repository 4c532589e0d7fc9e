package constants

const (
	// Date scoping policies applied when no day is selected
	NoDatePolicyMonth = "month"
	NoDatePolicyAll   = "all"

	// Default Settings Values
	DefaultTimezone     = "Asia/Bangkok"
	DefaultScope        = ScopeHomeVisit
	DefaultNoDatePolicy = NoDatePolicyMonth
)

// DefaultHistoryScopes lists scopes whose history view shows every status.
var DefaultHistoryScopes = []string{ScopeHomeVisit, ScopeTelemed}

const (
	// Setting keys
	SettingTimezone          = "timezone"
	SettingDefaultScope      = "default_scope"
	SettingNoDatePolicy      = "no_date_policy"
	SettingHistoryScopes     = "history_scopes"
	SettingScopePolicyPrefix = "policy."
)
