package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/rates"
	"github.com/rgehrsitz/difal/internal/tui/tuistyles"
)

// RatesModel lists the rate tables the engine is using
type RatesModel struct {
	provider *rates.Provider
	offset   int
	width    int
	height   int
}

// NewRatesModel creates a rates scene over provider
func NewRatesModel(provider *rates.Provider) *RatesModel {
	return &RatesModel{provider: provider}
}

// SetSize updates the scene dimensions
func (m *RatesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *RatesModel) visibleRows() int {
	if m.height <= 10 {
		return len(domain.AllStates())
	}
	return m.height - 10
}

// Update handles messages for the rates scene
func (m *RatesModel) Update(msg tea.Msg) (*RatesModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	maxOffset := len(domain.AllStates()) - m.visibleRows()
	if maxOffset < 0 {
		maxOffset = 0
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(keyMsg, keyDown):
		if m.offset < maxOffset {
			m.offset++
		}
	case key.Matches(keyMsg, keyTop):
		m.offset = 0
	}
	return m, nil
}

// View renders the rates scene
func (m *RatesModel) View() string {
	if m.provider == nil {
		return tuistyles.ErrorStyle.Render("no rate tables loaded")
	}

	states := domain.AllStates()
	end := m.offset + m.visibleRows()
	if end > len(states) {
		end = len(states)
	}

	rows := []string{
		tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-4s %-22s %12s %10s", "UF", "State", "Interstate", "Internal")),
	}
	for _, code := range states[m.offset:end] {
		inter, _ := m.provider.InterstateRate(code)
		internal, _ := m.provider.InternalRate(code)

		name := code.Name()
		name += strings.Repeat(" ", max(0, 22-len([]rune(name))))

		rows = append(rows, tuistyles.TableCellStyle.Render(fmt.Sprintf("%-4s %s %12s %10s",
			code, name, tuistyles.FormatPercentage(inter), tuistyles.FormatPercentage(internal))))
	}

	meta := m.provider.Metadata()
	footer := fmt.Sprintf("Imported goods: %s • Purchase destination: %s • Updated %s",
		tuistyles.FormatPercentage(m.provider.ImportedRate()),
		tuistyles.FormatPercentage(rates.PurchaseDestinationRate),
		meta.LastUpdated)

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("ICMS rate tables"),
		strings.Join(rows, "\n"),
		"",
		tuistyles.InfoStyle.Render(footer),
		tuistyles.SubtitleStyle.Render("↑/↓ scroll • esc back to form"),
	)
}
