package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "casecal"
	DefaultConfigPath = "~/.config/casecal/drafts.db"
	Version           = "v0.3.0"

	// Scope identifiers, one per scheduling screen
	ScopeAll         = "all"
	ScopeAppointment = "appointment"
	ScopeReferral    = "referral"
	ScopeHomeVisit   = "homevisit"
	ScopeTelemed     = "telemed"

	// StatusAll disables the status filter
	StatusAll = "all"

	// UnknownDateKey groups records whose date could not be parsed
	UnknownDateKey = "unknown"

	// Draft key prefixes
	DraftPrefixHomeVisit = "homevisit-draft:"
)

// Session States
const (
	StateBrowse SessionState = iota
	StateSearch
	StateDraftForm
)

// Scopes lists the scheduling screens in tab order.
var Scopes = []string{ScopeAppointment, ScopeReferral, ScopeHomeVisit, ScopeTelemed}

// ScopeLabels holds the tab titles shown for each scope.
var ScopeLabels = map[string]string{
	ScopeAll:         "ทั้งหมด",
	ScopeAppointment: "นัดหมาย",
	ScopeReferral:    "ส่งต่อ",
	ScopeHomeVisit:   "เยี่ยมบ้าน",
	ScopeTelemed:     "Telemed",
}
