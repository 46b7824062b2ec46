package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneRates:
		content = m.ratesModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(max(contentHeight, 0)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		contentContainer,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("DIFAL - ICMS Rate Differential Calculator")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneForm {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.formModel.Direction())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("esc", "form"),
		formatShortcut("F1", "help"),
		formatShortcut("F2", "rates"),
	}
	if m.resultsModel.Outcome() != nil {
		shortcuts = append(shortcuts, formatShortcut("F3", "last result"))
	}
	shortcuts = append(shortcuts, formatShortcut("ctrl+c", "quit"))

	statusText := strings.Join(shortcuts, " • ")

	if m.provider != nil {
		tables := SubtitleStyle.Render("rates " + m.provider.Metadata().LastUpdated)
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(tables) - 2
		statusText = statusText + strings.Repeat(" ", max(0, width)) + tables
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(content)
}

func (m Model) renderHelp() string {
	bindings := [][2]string{
		{"tab / ↓", "next field"},
		{"shift+tab / ↑", "previous field"},
		{"← / →", "change operation, state, or toggle"},
		{"space", "flip a yes/no field"},
		{"enter", "calculate"},
		{"c", "compare origins (purchase results)"},
		{"F1", "this help"},
		{"F2", "rate tables"},
		{"F3", "last result"},
		{"esc", "back to the form"},
		{"q", "quit (outside the form)"},
		{"ctrl+c", "quit"},
	}

	lines := []string{
		"Purchase compares buying locally with buying from another state and",
		"paying DIFAL on entry. Sale splits ICMS between origin and destination;",
		"DIFAL is owed only when the buyer is a final consumer.",
		"",
	}
	for _, b := range bindings {
		lines = append(lines, HelpKeyStyle.Width(16).Render(b[0])+HelpDescStyle.Render(b[1]))
	}

	return BorderStyle.Render(strings.Join(lines, "\n"))
}
