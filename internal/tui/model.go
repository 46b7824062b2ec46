package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/difal/internal/calculation"
	"github.com/rgehrsitz/difal/internal/compare"
	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/rates"
	"github.com/rgehrsitz/difal/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	calcEngine    *calculation.CalculationEngine
	compareEngine *compare.CompareEngine
	provider      *rates.Provider

	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel
	compareModel *scenes.CompareModel
	ratesModel   *scenes.RatesModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. The engine should be built on
// provider so the rates scene shows the tables actually in use.
func NewModel(engine *calculation.CalculationEngine, provider *rates.Provider) Model {
	return Model{
		currentScene:  SceneForm,
		calcEngine:    engine,
		compareEngine: compare.NewCompareEngine(engine),
		provider:      provider,
		formModel:     scenes.NewFormModel(),
		resultsModel:  scenes.NewResultsModel(),
		compareModel:  scenes.NewCompareModel(),
		ratesModel:    scenes.NewRatesModel(provider),
		width:         80,
		height:        24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// calculateCmd returns a command that runs one simulation
func calculateCmd(engine *calculation.CalculationEngine, sim domain.Simulation) tea.Cmd {
	return func() tea.Msg {
		return CalculationCompleteMsg{Outcome: engine.Calculate(sim)}
	}
}

// compareCmd returns a command that prices a purchase from every origin
func compareCmd(engine *compare.CompareEngine, input domain.PurchaseInput) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.CompareOrigins(context.Background(), input, compare.CompareOptions{})
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Simulation"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneRates:
		return "Rates"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
