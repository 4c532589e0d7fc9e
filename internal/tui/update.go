package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/cleftcare/casecal/internal/cli/drafts"
	"github.com/cleftcare/casecal/internal/constants"
	apperrors "github.com/cleftcare/casecal/internal/errors"
	"github.com/cleftcare/casecal/internal/logger"
	"github.com/cleftcare/casecal/internal/models"
	"github.com/cleftcare/casecal/internal/tui/components/monthgrid"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.setSize(size.Width, size.Height)
	}

	switch m.state {
	case constants.StateDraftForm:
		return m.updateDraftForm(msg)
	case constants.StateSearch:
		return m.updateSearch(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case monthgrid.SelectDateMsg:
		m.view.SelectDate(msg.Date)
		m.refresh()
		return m, nil

	case monthgrid.ChangeMonthMsg:
		m.view.ChangeMonth(msg.Delta)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		m.formError = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.cycleScope(1)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.cycleScope(-1)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.PrevMonth):
			m.view.ChangeMonth(-1)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.NextMonth):
			m.view.ChangeMonth(1)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.grid.SetCursor(m.view.GoToday())
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.ShowAll):
			m.view.ShowAll()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Status):
			m.cycleStatus()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.History):
			m.view.SetHistory(!m.view.State().History)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Search):
			m.state = constants.StateSearch
			m.search.SetValue(m.view.State().Query)
			m.search.CursorEnd()
			cmd := m.search.Focus()
			return m, tea.Batch(cmd, textinput.Blink)
		case key.Matches(msg, m.keys.NewDraft):
			return m.startDraftForm()
		}
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	cmds = append(cmds, cmd)
	m.cases, cmd = m.cases.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// updateSearch feeds keys to the search box and re-filters on every edit.
// Esc clears the query; enter keeps it.
func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.search.SetValue("")
			m.view.SetSearch("")
			m.search.Blur()
			m.state = constants.StateBrowse
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Accept):
			m.search.Blur()
			m.state = constants.StateBrowse
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.view.State().Query {
		m.view.SetSearch(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) startDraftForm() (tea.Model, tea.Cmd) {
	if !m.draftsEnabled {
		m.formError = apperrors.Format(apperrors.ErrNotInitialized)
		return m, nil
	}

	m.draftForm = &DraftFormModel{
		VisitDate: m.grid.Cursor(),
		Status:    "Pending",
	}
	if sel := m.view.State().SelectedDate; sel != "" {
		m.draftForm.VisitDate = sel
	}
	if r, ok := m.cases.Selected(); ok && r.Scope == constants.ScopeHomeVisit {
		m.draftForm.HN = r.HN
		m.draftForm.PatientName = r.PatientName
	}
	m.form = NewDraftForm(m.draftForm, m.ctx.Statuses())
	m.formError = ""
	m.state = constants.StateDraftForm
	return m, m.form.Init()
}

func (m Model) updateDraftForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateBrowse
		m.form = nil
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		draftKey, err := m.saveDraft(time.Now())
		if err != nil {
			// Stay in the form so the user can correct it or cancel with ESC
			m.formError = fmt.Sprintf("Failed to save draft: %v", err)
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.notice = fmt.Sprintf("บันทึกฉบับร่างแล้ว: %s", draftKey)
		m.countDrafts()
		m.state = constants.StateBrowse
	case huh.StateAborted:
		m.state = constants.StateBrowse
	}
	return m, tea.Batch(cmds...)
}

// saveDraft stores the form as a new home-visit draft and returns its key.
func (m *Model) saveDraft(now time.Time) (string, error) {
	hv := models.HomeVisitDraft{
		ID:          uuid.NewString(),
		HN:          m.draftForm.HN,
		PatientName: m.draftForm.PatientName,
		VisitDate:   m.draftForm.VisitDate,
		Status:      m.draftForm.Status,
		Note:        m.draftForm.Note,
		CreatedAt:   now,
	}
	d, err := drafts.EncodeHomeVisit(hv, "")
	if err != nil {
		return "", err
	}
	d.UpdatedAt = now
	if err := m.ctx.Store.SaveDraft(d); err != nil {
		return "", err
	}
	logger.Info("draft saved", "key", d.Key)
	return d.Key, nil
}
