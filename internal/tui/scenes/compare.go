package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/difal/internal/compare"
	"github.com/rgehrsitz/difal/internal/tui/tuistyles"
)

var (
	keyUp   = key.NewBinding(key.WithKeys("up", "k"))
	keyDown = key.NewBinding(key.WithKeys("down", "j"))
	keyTop  = key.NewBinding(key.WithKeys("g"))
)

// CompareModel shows a purchase priced from every origin state
type CompareModel struct {
	set    *compare.ComparisonSet
	offset int
	width  int
	height int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetResults stores comparison results
func (m *CompareModel) SetResults(set *compare.ComparisonSet) {
	m.set = set
	m.offset = 0
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *CompareModel) visibleRows() int {
	if m.height <= 14 {
		return 10
	}
	return m.height - 14
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.set == nil {
		return m, nil
	}

	maxOffset := len(m.set.AlternativeResults) - m.visibleRows()
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

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.set == nil || m.set.BaseResult == nil {
		return tuistyles.SubtitleStyle.Render("No comparison yet. Calculate a purchase and press c.")
	}

	cheapest := m.set.Cheapest()
	header := tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-24s %8s %14s %14s %14s", "Origin", "Rate", "DIFAL", "Remote total", "vs base"))

	rows := []string{header, m.renderRow(*m.set.BaseResult, true, cheapest)}

	end := m.offset + m.visibleRows()
	if end > len(m.set.AlternativeResults) {
		end = len(m.set.AlternativeResults)
	}
	for _, alt := range m.set.AlternativeResults[m.offset:end] {
		rows = append(rows, m.renderRow(alt, false, cheapest))
	}
	if hidden := len(m.set.AlternativeResults) - end; hidden > 0 {
		rows = append(rows, tuistyles.SubtitleStyle.Render(fmt.Sprintf("… %d more", hidden)))
	}

	var recs []string
	for _, rec := range m.set.Recommendations {
		recs = append(recs, tuistyles.InfoStyle.Render("• "+rec))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Origin comparison (base "+string(m.set.BaseOrigin)+")"),
		strings.Join(rows, "\n"),
		"",
		strings.Join(recs, "\n"),
		"",
		tuistyles.SubtitleStyle.Render("↑/↓ scroll • esc back to form"),
	)
}

func (m *CompareModel) renderRow(r compare.ComparisonResult, base bool, cheapest *compare.ComparisonResult) string {
	name := string(r.OriginState) + " " + r.StateName
	if base {
		name += " (base)"
	}
	if len([]rune(name)) > 24 {
		name = string([]rune(name)[:21]) + "..."
	}
	// %-24s pads by bytes; accented names need rune-aware padding
	name += strings.Repeat(" ", max(0, 24-len([]rune(name))))

	line := fmt.Sprintf("%s %8s %14s %14s %14s",
		name,
		tuistyles.FormatPercentage(r.OriginRate),
		tuistyles.FormatCurrency(r.DIFAL),
		tuistyles.FormatCurrency(r.RemoteTotal),
		tuistyles.FormatCurrency(r.DiffFromBase),
	)

	switch {
	case cheapest != nil && cheapest.OriginState == r.OriginState:
		return tuistyles.TableHighlightStyle.Render(line)
	case r.DiffFromBase.IsPositive():
		// costlier than the base origin
		return tuistyles.MetricTrendStyle(false).Render(line)
	default:
		return tuistyles.TableCellStyle.Render(line)
	}
}
