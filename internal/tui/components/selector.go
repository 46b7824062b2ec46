package components

import (
	"github.com/rgehrsitz/difal/internal/tui/tuistyles"
)

// Option is one choice offered by a Selector
type Option struct {
	Value string
	Label string
}

// Selector cycles through a fixed list of options with left and right
type Selector struct {
	Options []Option
	Index   int
}

// NewSelector creates a selector positioned on the first option
func NewSelector(options []Option) *Selector {
	return &Selector{Options: options}
}

// Next moves to the following option, wrapping around
func (s *Selector) Next() {
	if len(s.Options) == 0 {
		return
	}
	s.Index = (s.Index + 1) % len(s.Options)
}

// Prev moves to the preceding option, wrapping around
func (s *Selector) Prev() {
	if len(s.Options) == 0 {
		return
	}
	s.Index = (s.Index - 1 + len(s.Options)) % len(s.Options)
}

// Select positions the selector on value; it reports false when value is
// not one of the options
func (s *Selector) Select(value string) bool {
	for i, opt := range s.Options {
		if opt.Value == value {
			s.Index = i
			return true
		}
	}
	return false
}

// Value returns the current option's value
func (s *Selector) Value() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[s.Index].Value
}

// Render draws the current option, with arrows when focused
func (s *Selector) Render(focused bool) string {
	if len(s.Options) == 0 {
		return tuistyles.SubtitleStyle.Render("(none)")
	}
	label := s.Options[s.Index].Label
	if focused {
		return tuistyles.SelectedItemStyle.Render("◀ " + label + " ▶")
	}
	return tuistyles.UnselectedItemStyle.Render("  " + label)
}

// Toggle renders a yes/no switch
func Toggle(on, focused bool) string {
	text := "[ ] no"
	if on {
		text = "[x] yes"
	}
	if focused {
		return tuistyles.SelectedItemStyle.Render(text)
	}
	return tuistyles.UnselectedItemStyle.Render(text)
}
