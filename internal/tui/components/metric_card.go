package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/difal/internal/tui/tuistyles"
)

const defaultCardWidth = 26

// MetricCard shows one figure of a simulation result. The card of the
// cheaper option is highlighted with the primary border color.
type MetricCard struct {
	Label     string
	Value     string
	Note      string
	Highlight bool
	Width     int
}

// AmountCard creates a card for a currency amount
func AmountCard(label string, amount decimal.Decimal) *MetricCard {
	return &MetricCard{Label: label, Value: tuistyles.FormatCurrency(amount), Width: defaultCardWidth}
}

// RateCard creates a card for a percentage rate
func RateCard(label string, rate decimal.Decimal) *MetricCard {
	return &MetricCard{Label: label, Value: tuistyles.FormatPercentage(rate), Width: defaultCardWidth}
}

// WithNote adds a muted line under the value
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// Cheaper highlights the card and notes how much it saves
func (m *MetricCard) Cheaper(by decimal.Decimal) *MetricCard {
	m.Highlight = true
	m.Note = tuistyles.TrendIndicator(true) + " " + tuistyles.FormatCurrency(by) + " cheaper"
	return m
}

// Render returns the styled card
func (m *MetricCard) Render() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(m.Label),
		tuistyles.MetricValueStyle.Render(m.Value),
	}
	if m.Note != "" {
		noteStyle := tuistyles.SubtitleStyle
		if m.Highlight {
			noteStyle = tuistyles.MetricPositiveStyle
		}
		lines = append(lines, noteStyle.Render(m.Note))
	}

	border := tuistyles.ColorBorder
	if m.Highlight {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// MetricGrid lays cards out left to right, columns per row
func MetricGrid(cards []*MetricCard, columns int) string {
	if columns < 1 {
		columns = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		rendered := make([]string, 0, end-start)
		for _, card := range cards[start:end] {
			rendered = append(rendered, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
