package tui

import (
	"github.com/rgehrsitz/difal/internal/compare"
	"github.com/rgehrsitz/difal/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneCompare
	SceneRates
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CalculationCompleteMsg signals a simulation has finished
type CalculationCompleteMsg struct {
	Outcome domain.Outcome
}

// ComparisonCompleteMsg signals an origin comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
