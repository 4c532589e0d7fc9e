package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/cleftcare/casecal/internal/calendar"
	"github.com/cleftcare/casecal/internal/calview"
	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/cli/render"
	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/logger"
	"github.com/cleftcare/casecal/internal/models"
	"github.com/cleftcare/casecal/internal/tui/components/caselist"
	"github.com/cleftcare/casecal/internal/tui/components/monthgrid"
	"github.com/cleftcare/casecal/internal/utils"
)

// tabScopes is the scope order of the tab bar.
var tabScopes = append([]string{constants.ScopeAll}, constants.Scopes...)

type Model struct {
	ctx           *cli.Context
	view          *calview.View[models.CaseRecord]
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	grid          monthgrid.Model
	cases         caselist.Model
	search        textinput.Model
	form          *huh.Form
	draftForm     *DraftFormModel
	draftsEnabled bool
	draftCount    int
	notice        string
	formError     string // Error message to display for form operations
	quitting      bool
	width         int
	height        int
}

// NewModel opens on ctx.Settings.DefaultScope in the month of ctx.Today.
func NewModel(ctx *cli.Context) Model {
	scope := ctx.Settings.DefaultScope
	if scope == "" {
		scope = models.DefaultSettings().DefaultScope
	}

	view := ctx.NewView(scope, calendar.Month{}, calview.Events{
		OnDateSelect: func(date string) {
			logger.Debug("date selected", "date", date)
		},
		OnMonthChange: func(m calendar.Month) {
			logger.Debug("month changed", "month", m.String())
		},
		OnScopeChange: func(scope string) {
			logger.Debug("scope changed", "scope", scope)
		},
		OnStatusFilterChange: func(status string) {
			logger.Debug("status filter changed", "status", status)
		},
		OnSearchChange: func(query string) {
			logger.Debug("search changed", "query", query)
		},
	})

	search := textinput.New()
	search.Placeholder = "ชื่อ, HN หรือรหัส"
	search.Prompt = "ค้นหา: "
	search.CharLimit = 64

	m := Model{
		ctx:    ctx,
		view:   view,
		state:  constants.StateBrowse,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		grid:   monthgrid.New(view.Grid(), utils.FormatDay(ctx.Today)),
		cases:  caselist.New(60, 20),
		search: search,
	}

	if ctx.Store != nil {
		if err := ctx.Store.Load(); err != nil {
			logger.Warn("drafts disabled", "error", err)
		} else {
			m.draftsEnabled = true
			m.countDrafts()
		}
	}

	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateSearch:
		return []key.Binding{m.keys.Accept, m.keys.Cancel}
	case constants.StateDraftForm:
		return []key.Binding{m.keys.Cancel}
	}
	return []key.Binding{m.keys.Tab, m.keys.PrevMonth, m.keys.NextMonth, m.grid.Keys().Select, m.keys.Search, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	gk := m.grid.Keys()
	lk := m.cases.Keys()
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Help, m.keys.Quit}
	navigation := []key.Binding{gk.Up, gk.Down, gk.Left, gk.Right, gk.Select, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Today}
	filters := []key.Binding{m.keys.ShowAll, m.keys.Status, m.keys.Search, m.keys.History}
	list := []key.Binding{lk.Up, lk.Down, lk.PageUp, lk.PageDown, m.keys.NewDraft}
	return [][]key.Binding{global, navigation, filters, list}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh redraws the grid and the list from the view.
func (m *Model) refresh() {
	m.grid.SetGrid(m.view.Grid())

	if m.view.State().History {
		m.cases.SetGroups(m.view.GroupedItems(), m.ctx.Resolver(), m.view.Today())
		return
	}
	m.cases.SetCases(m.view.FilteredItems(), m.ctx.Resolver(), m.view.Today())
}

// cycleScope moves the active scope by delta tabs. A status filter the new
// scope does not offer is reset.
func (m *Model) cycleScope(delta int) {
	i := slices.Index(tabScopes, m.view.State().Scope)
	next := tabScopes[(i+delta+len(tabScopes))%len(tabScopes)]
	m.view.SetScope(next)

	if !slices.Contains(m.ctx.Statuses().FilterOptions(next), m.view.State().Status) {
		m.view.SetStatusFilter(constants.StatusAll)
	}
}

// cycleStatus steps through the status filters of the active scope.
func (m *Model) cycleStatus() {
	st := m.view.State()
	opts := m.ctx.Statuses().FilterOptions(st.Scope)
	i := slices.Index(opts, st.Status)
	m.view.SetStatusFilter(opts[(i+1)%len(opts)])
}

func (m *Model) countDrafts() {
	drafts, err := m.ctx.Store.ListDrafts(constants.DraftPrefixHomeVisit)
	if err != nil {
		logger.Warn("failed to list drafts", "error", err)
		return
	}
	m.draftCount = len(drafts)
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := docStyle.GetFrameSize()
	listWidth := width - h - render.CellWidth*7 - paneStyle.GetHorizontalFrameSize()
	listHeight := height - v - 6
	m.cases.SetSize(max(listWidth, 20), max(listHeight, 5))
}
