package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/tui/components"
	"github.com/rgehrsitz/difal/internal/tui/tuimsg"
	"github.com/rgehrsitz/difal/internal/tui/tuistyles"
)

var keyCompare = key.NewBinding(key.WithKeys("c"))

// ResultsModel represents the results display scene
type ResultsModel struct {
	outcome *domain.Outcome
	width   int
	height  int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetOutcome updates the outcome to display
func (m *ResultsModel) SetOutcome(outcome domain.Outcome) {
	m.outcome = &outcome
}

// Outcome returns the displayed outcome, or nil
func (m *ResultsModel) Outcome() *domain.Outcome {
	return m.outcome
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// CanCompare reports whether the shown result is a purchase that can be
// priced from other origins
func (m *ResultsModel) CanCompare() bool {
	return m.outcome != nil && m.outcome.Err == nil && m.outcome.Purchase != nil &&
		m.outcome.Simulation.Purchase != nil && !m.outcome.Simulation.Purchase.Imported
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keyCompare) && m.CanCompare() {
		input := *m.outcome.Simulation.Purchase
		return m, func() tea.Msg {
			return tuimsg.CompareRequestedMsg{Input: input}
		}
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.outcome == nil {
		return tuistyles.SubtitleStyle.Render("No results yet. Fill in the form and press enter.")
	}
	if m.outcome.Err != nil {
		return tuistyles.ErrorStyle.Render("✗ " + m.outcome.Err.Error())
	}

	var body string
	switch {
	case m.outcome.Purchase != nil:
		body = m.renderPurchase(m.outcome.Purchase)
	case m.outcome.Sale != nil:
		body = m.renderSale(m.outcome.Sale)
	}

	help := "esc back to form"
	if m.CanCompare() {
		help = "c compare origins • " + help
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", tuistyles.SubtitleStyle.Render(help))
}

func (m *ResultsModel) columns() int {
	if m.width > 0 && m.width < 90 {
		return 2
	}
	return 3
}

func (m *ResultsModel) renderPurchase(r *domain.PurchaseResult) string {
	remote := components.AmountCard("Remote total", r.RemoteTotal).WithNote("includes freight and DIFAL")
	local := components.AmountCard("Local total", r.LocalTotal).WithNote("includes freight")
	if r.Verdict == domain.VerdictRemote {
		remote.Cheaper(r.Difference)
	} else {
		local.Cheaper(r.Difference)
	}

	cards := []*components.MetricCard{
		components.RateCard("Origin rate", r.OriginRate),
		components.RateCard("Destination rate", r.DestinationRate),
		components.AmountCard("DIFAL", r.DIFAL).
			WithNote(fmt.Sprintf("differential %s", tuistyles.FormatPercentage(r.DifferentialRate))),
		local,
		remote,
	}

	verdictStyle := tuistyles.MetricPositiveStyle.Bold(true)
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Purchase result"),
		components.MetricGrid(cards, m.columns()),
		verdictStyle.Render("→ "+string(r.Verdict)),
	)
}

func (m *ResultsModel) renderSale(r *domain.SaleResult) string {
	difal := components.AmountCard("Destination DIFAL", r.DestinationDIFAL)
	if r.DestinationDIFAL.IsZero() {
		difal.WithNote("not owed")
	} else {
		difal.WithNote("differential " + tuistyles.FormatPercentage(r.InternalRate.Sub(r.InterstateRate)))
	}

	cards := []*components.MetricCard{
		components.AmountCard("Calculation base", r.Base),
		components.RateCard("Interstate rate", r.InterstateRate),
		components.RateCard("Internal rate", r.InternalRate),
		components.AmountCard("Origin ICMS", r.OriginICMS),
		difal,
		components.AmountCard("Total ICMS", r.TotalICMS),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Sale result"),
		components.MetricGrid(cards, m.columns()),
	)
}
