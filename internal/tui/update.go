package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/difal/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		m.ratesModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.CalculateRequestedMsg:
		m.loading = true
		m.loadingMessage = "Calculating..."
		return m, calculateCmd(m.calcEngine, msg.Simulation)

	case CalculationCompleteMsg:
		m.loading = false
		m.resultsModel.SetOutcome(msg.Outcome)
		return m, navigate(SceneResults)

	case tuimsg.CompareRequestedMsg:
		m.loading = true
		m.loadingMessage = "Comparing origins..."
		return m, compareCmd(m.compareEngine, msg.Input)

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResults(msg.Set)
		return m, navigate(SceneCompare)
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "f1":
		return m, navigate(SceneHelp)

	case "f2":
		return m, navigate(SceneRates)

	case "f3":
		if m.resultsModel.Outcome() != nil {
			return m, navigate(SceneResults)
		}
		return m, nil

	case "esc":
		if m.currentScene != SceneForm {
			return m, navigate(SceneForm)
		}

	case "q":
		// Letters belong to text inputs while the form is open
		if m.currentScene != SceneForm {
			return m, tea.Quit
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneRates:
		m.ratesModel, cmd = m.ratesModel.Update(msg)
	}
	return m, cmd
}
