package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/difal/internal/output"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#2E8B57")
	ColorSecondary = lipgloss.Color("#4682B4")
	ColorAccent    = lipgloss.Color("#F2C94C")
	ColorSuccess   = lipgloss.Color("#27AE60")
	ColorDanger    = lipgloss.Color("#EB5757")
	ColorInfo      = lipgloss.Color("#56CCF2")

	ColorForeground = lipgloss.Color("#E0E0E0")
	ColorMuted      = lipgloss.Color("#828282")
	ColorBorder     = lipgloss.Color("#4F4F4F")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(22)

	FocusedLabelStyle = FieldLabelStyle.
				Foreground(ColorAccent).
				Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)

	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Width(12)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)
)

// MetricTrendStyle picks the trend color for a favorable or unfavorable change
func MetricTrendStyle(favorable bool) lipgloss.Style {
	if favorable {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a favorable or unfavorable change
func TrendIndicator(favorable bool) string {
	if favorable {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders an amount in reais
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}

// FormatPercentage renders a rate expressed in percent
func FormatPercentage(rate decimal.Decimal) string {
	return output.FormatPercentage(rate)
}
