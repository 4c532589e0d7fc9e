package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleftcare/casecal/internal/calview"
	"github.com/cleftcare/casecal/internal/cli/render"
	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/listfilter"
	"github.com/cleftcare/casecal/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDraftForm:
		content = m.viewDraftForm()
	default:
		content = m.viewBrowse()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewFilterBar(),
		content,
		m.viewMessages(),
		m.help.View(m),
	)
	return docStyle.Render(ui)
}

func (m Model) viewTabs() string {
	active := m.view.State().Scope
	tabs := make([]string, 0, len(tabScopes))
	for _, scope := range tabScopes {
		title := constants.ScopeLabels[scope]
		if scope == active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewFilterBar() string {
	st := m.view.State()
	parts := []string{
		"สถานะ: " + statusLabel(st.Status),
		"แสดง: " + modeLabel(st),
	}
	if st.History {
		parts = append(parts, "ประวัติ")
	}
	if m.draftsEnabled {
		parts = append(parts, fmt.Sprintf("ฉบับร่าง: %d", m.draftCount))
	}

	bar := filterBarStyle.Render(strings.Join(parts, " · "))
	if m.state == constants.StateSearch {
		return lipgloss.JoinVertical(lipgloss.Left, bar, m.search.View())
	}
	if st.Query != "" {
		return lipgloss.JoinVertical(lipgloss.Left, bar, filterBarStyle.Render("ค้นหา: "+st.Query))
	}
	return bar
}

func (m Model) viewBrowse() string {
	left := paneStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.grid.View(),
		"",
		render.CountStyle.Render(fmt.Sprintf("%d รายการ", m.cases.Len())),
	))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.cases.View())
}

func (m Model) viewDraftForm() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		render.TitleStyle.Render("ฉบับร่างเยี่ยมบ้านใหม่"),
		m.form.View(),
	)
}

func (m Model) viewMessages() string {
	switch {
	case m.formError != "":
		return dangerStyle.Render(m.formError)
	case m.notice != "":
		return noticeStyle.Render(m.notice)
	}
	return ""
}

func statusLabel(status string) string {
	if status == constants.StatusAll {
		return "ทุกสถานะ"
	}
	if label, ok := listfilter.CategoryLabels[listfilter.Category(status)]; ok {
		return label
	}
	return status
}

func modeLabel(st calview.FilterState) string {
	switch st.Mode {
	case calview.DateScoped:
		return utils.ThaiDateLabel(st.SelectedDate)
	case calview.MonthScoped:
		return st.Month.ThaiTitle()
	default:
		return "ทุกวัน"
	}
}
