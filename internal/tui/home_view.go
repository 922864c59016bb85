package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const helpText = "/ search | n/p or PgDn/PgUp page | r refresh | q quit"

// View renders the home view (Bubble Tea interface).
func (m HomeModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderSearch(),
	}
	if m.state.Error.IsError {
		sections = append(sections, m.renderError())
	}
	sections = append(sections, m.renderBody(), m.renderFooter(), SubtleStyle.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m HomeModel) renderHeader() string {
	header := HeaderStyle.Render("SERVICE CATALOG")
	if m.state.Loading {
		return header + "  " + m.loadingState.View() + LabelStyle.Render(" Loading...")
	}
	return header
}

func (m HomeModel) renderSearch() string {
	label := LabelStyle.Render("Search: ")
	if m.searching {
		return label + m.search.View()
	}
	if v := m.search.Value(); v != "" {
		return label + ValueStyle.Render(v)
	}
	return label + SubtleStyle.Render("press / to search")
}

func (m HomeModel) renderError() string {
	return CriticalStyle.Render("Error: "+m.state.Error.Message) +
		SubtleStyle.Render("  press r to retry")
}

func (m HomeModel) renderBody() string {
	if len(m.state.Services.PageItems) > 0 {
		return m.table.View()
	}
	if m.state.Loading {
		return SubtleStyle.Render("Fetching services...")
	}
	if !m.state.Services.IsEmpty() {
		return SubtleStyle.Render("Page is past the end of the results; press p to go back")
	}
	if q := m.state.Query.Search; q != "" {
		return SubtleStyle.Render(fmt.Sprintf("No services match %q", q))
	}
	return SubtleStyle.Render("No services")
}

func (m HomeModel) renderFooter() string {
	footer := InfoStyle.Render(FormatRange(m.state.Services))
	if page := FormatPage(m.state.Services); page != "" {
		footer += LabelStyle.Render(" | " + page)
	}
	return footer
}
