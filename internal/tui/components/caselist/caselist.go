package caselist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cleftcare/casecal/internal/cli/render"
	"github.com/cleftcare/casecal/internal/listfilter"
	"github.com/cleftcare/casecal/internal/models"
)

// EmptyText is shown when no record passes the filters.
const EmptyText = "ไม่พบรายการ"

type Item struct {
	Case   models.CaseRecord
	Status listfilter.StatusEntry
	Today  time.Time
}

func (i Item) Title() string {
	title := i.Case.PatientName
	if title == "" {
		title = i.Case.ID
	}
	if i.Case.HN != "" {
		title += "  " + i.Case.HN
	}
	return title
}

func (i Item) Description() string {
	return strings.Join([]string{render.DateLabel(i.Case, i.Today), i.Case.ScopeLabel(), i.Status.Label}, " · ")
}

func (i Item) FilterValue() string { return i.Case.PatientName }

// Header heads one day of the history view. It is never selected.
type Header struct {
	Label string
	Count int
}

func (h Header) Title() string       { return "── " + h.Label }
func (h Header) Description() string { return fmt.Sprintf("%d รายการ", h.Count) }
func (h Header) FilterValue() string { return "" }

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "list up"),
		),
		Down: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "list down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "list page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "list page down"),
		),
	}
}

// listKeyMap keeps the list from claiming keys the calendar uses.
func listKeyMap(keys KeyMap) list.KeyMap {
	disabled := key.NewBinding(key.WithDisabled())
	return list.KeyMap{
		CursorUp:             keys.Up,
		CursorDown:           keys.Down,
		PrevPage:             keys.PageUp,
		NextPage:             keys.PageDown,
		GoToStart:            disabled,
		GoToEnd:              disabled,
		Filter:               disabled,
		ClearFilter:          disabled,
		CancelWhileFiltering: disabled,
		AcceptWhileFiltering: disabled,
		ShowFullHelp:         disabled,
		CloseFullHelp:        disabled,
		Quit:                 disabled,
		ForceQuit:            disabled,
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	keys := DefaultKeyMap()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, width, height)
	l.Title = "รายการ"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("รายการ", "รายการ")
	l.KeyMap = listKeyMap(keys)

	return Model{
		list: l,
		keys: keys,
	}
}

// SetCases replaces the rows, keeping their order.
func (m *Model) SetCases(records []models.CaseRecord, resolve render.Resolver, today time.Time) {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = Item{Case: r, Status: resolve(r), Today: today}
	}
	m.list.SetItems(items)
}

// SetGroups lays out date groups in order, each under a Header row. The
// cursor starts on the first record.
func (m *Model) SetGroups(groups []listfilter.DateGroup[models.CaseRecord], resolve render.Resolver, today time.Time) {
	var items []list.Item
	for _, g := range groups {
		items = append(items, Header{Label: g.Label, Count: len(g.Items)})
		for _, r := range g.Items {
			items = append(items, Item{Case: r, Status: resolve(r), Today: today})
		}
	}
	m.list.SetItems(items)
	m.list.Select(0)
	m.skipHeader(true)
}

// Len returns the number of records, not counting headers.
func (m Model) Len() int {
	n := 0
	for _, it := range m.list.Items() {
		if _, ok := it.(Item); ok {
			n++
		}
	}
	return n
}

// Selected returns the highlighted record.
func (m Model) Selected() (models.CaseRecord, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.CaseRecord{}, false
	}
	return item.Case, true
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	before := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.skipHeader(m.list.Index() >= before)
	return m, cmd
}

// skipHeader moves the cursor off a Header row, in the direction it was
// going when possible.
func (m *Model) skipHeader(down bool) {
	if _, ok := m.list.SelectedItem().(Header); !ok {
		return
	}
	i := m.list.Index()
	n := len(m.list.Items())
	if down && i+1 < n {
		m.list.Select(i + 1)
	} else if !down && i > 0 {
		m.list.Select(i - 1)
		if _, ok := m.list.SelectedItem().(Header); ok && i+1 < n {
			m.list.Select(i + 1)
		}
	} else if i+1 < n {
		m.list.Select(i + 1)
	}
}

func (m Model) View() string {
	if m.Len() == 0 {
		return render.MutedStyle.Render(EmptyText)
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
