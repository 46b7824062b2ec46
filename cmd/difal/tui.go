package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/difal/internal/calculation"
	"github.com/rgehrsitz/difal/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run simulations interactively in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := loadProvider()
		if err != nil {
			return err
		}

		// Engine logs would draw over the alternate screen
		engine := calculation.NewCalculationEngineWithRates(provider)

		p := tea.NewProgram(
			tui.NewModel(engine, provider),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}
