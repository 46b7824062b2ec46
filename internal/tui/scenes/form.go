package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/tui/components"
	"github.com/rgehrsitz/difal/internal/tui/tuimsg"
	"github.com/rgehrsitz/difal/internal/tui/tuistyles"
)

type field int

const (
	fieldDirection field = iota
	fieldAmountLocal
	fieldAmountRemote
	fieldFreightLocal
	fieldFreightRemote
	fieldAmount
	fieldFreight
	fieldState
	fieldImported
	fieldFinalConsumer
)

var purchaseFields = []field{
	fieldDirection, fieldAmountLocal, fieldAmountRemote, fieldFreightLocal, fieldFreightRemote, fieldState, fieldImported,
}

var saleFields = []field{
	fieldDirection, fieldAmount, fieldFreight, fieldState, fieldImported, fieldFinalConsumer,
}

var fieldLabels = map[field]string{
	fieldDirection:     "Operation",
	fieldAmountLocal:   "Local price",
	fieldAmountRemote:  "Remote price",
	fieldFreightLocal:  "Local freight",
	fieldFreightRemote: "Remote freight",
	fieldAmount:        "Product value",
	fieldFreight:       "Freight",
	fieldImported:      "Imported goods",
	fieldFinalConsumer: "Final consumer",
}

var (
	keyNext   = key.NewBinding(key.WithKeys("tab", "down"))
	keyPrev   = key.NewBinding(key.WithKeys("shift+tab", "up"))
	keyLeft   = key.NewBinding(key.WithKeys("left"))
	keyRight  = key.NewBinding(key.WithKeys("right"))
	keyToggle = key.NewBinding(key.WithKeys(" "))
	keySubmit = key.NewBinding(key.WithKeys("enter"))
)

// FormModel collects the inputs of one simulation
type FormModel struct {
	direction     domain.Direction
	inputs        map[field]textinput.Model
	state         *components.Selector
	imported      bool
	finalConsumer bool
	focus         int
	err           error
	width         int
	height        int
}

// NewFormModel creates an empty purchase form
func NewFormModel() *FormModel {
	m := &FormModel{
		direction: domain.DirectionPurchase,
		inputs:    make(map[field]textinput.Model),
	}

	for _, f := range []field{fieldAmountLocal, fieldAmountRemote, fieldFreightLocal, fieldFreightRemote, fieldAmount, fieldFreight} {
		ti := textinput.New()
		ti.Prompt = "R$ "
		ti.Placeholder = "0,00"
		ti.CharLimit = 18
		ti.Width = 16
		m.inputs[f] = ti
	}

	options := make([]components.Option, 0, len(domain.AllStates()))
	for _, code := range domain.AllStates() {
		options = append(options, components.Option{
			Value: string(code),
			Label: fmt.Sprintf("%s %s", code, code.Name()),
		})
	}
	m.state = components.NewSelector(options)
	m.state.Select(string(domain.SP))

	return m
}

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Direction returns the operation the form is collecting
func (m *FormModel) Direction() domain.Direction {
	return m.direction
}

// Err returns the last validation error, if any
func (m *FormModel) Err() error {
	return m.err
}

// Editing reports whether a text input currently has focus
func (m *FormModel) Editing() bool {
	_, ok := m.inputs[m.focused()]
	return ok
}

func (m *FormModel) fields() []field {
	if m.direction == domain.DirectionSale {
		return saleFields
	}
	return purchaseFields
}

func (m *FormModel) focused() field {
	fields := m.fields()
	if m.focus < 0 || m.focus >= len(fields) {
		return fieldDirection
	}
	return fields[m.focus]
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(keyMsg, keyNext):
		return m, m.moveFocus(1)

	case key.Matches(keyMsg, keyPrev):
		return m, m.moveFocus(-1)

	case key.Matches(keyMsg, keySubmit):
		return m, m.submit()

	case key.Matches(keyMsg, keyLeft), key.Matches(keyMsg, keyRight), key.Matches(keyMsg, keyToggle):
		if m.Editing() {
			return m.updateInput(msg)
		}
		m.change(key.Matches(keyMsg, keyLeft))
		return m, nil
	}

	return m.updateInput(msg)
}

func (m *FormModel) updateInput(msg tea.Msg) (*FormModel, tea.Cmd) {
	f := m.focused()
	ti, ok := m.inputs[f]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[f] = ti
	return m, cmd
}

// change adjusts a non-text field in place
func (m *FormModel) change(back bool) {
	switch m.focused() {
	case fieldDirection:
		if m.direction == domain.DirectionPurchase {
			m.direction = domain.DirectionSale
		} else {
			m.direction = domain.DirectionPurchase
		}
		m.err = nil
	case fieldState:
		if back {
			m.state.Prev()
		} else {
			m.state.Next()
		}
	case fieldImported:
		m.imported = !m.imported
	case fieldFinalConsumer:
		m.finalConsumer = !m.finalConsumer
	}
}

func (m *FormModel) moveFocus(delta int) tea.Cmd {
	fields := m.fields()
	if ti, ok := m.inputs[m.focused()]; ok {
		ti.Blur()
		m.inputs[m.focused()] = ti
	}

	m.focus = (m.focus + delta + len(fields)) % len(fields)

	if ti, ok := m.inputs[m.focused()]; ok {
		cmd := ti.Focus()
		m.inputs[m.focused()] = ti
		return cmd
	}
	return nil
}

func (m *FormModel) submit() tea.Cmd {
	sim, err := m.Simulation()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	return func() tea.Msg {
		return tuimsg.CalculateRequestedMsg{Simulation: sim}
	}
}

// Simulation builds a simulation from the current form values
func (m *FormModel) Simulation() (domain.Simulation, error) {
	sim := domain.Simulation{Name: "interactive", Direction: m.direction}

	amounts := make(map[field]decimal.Decimal)
	for _, f := range m.fields() {
		ti, ok := m.inputs[f]
		if !ok {
			continue
		}
		amount, err := domain.ParseAmount(ti.Value())
		if err != nil {
			return sim, fmt.Errorf("%s: %w", strings.ToLower(fieldLabels[f]), err)
		}
		amounts[f] = amount
	}

	state := domain.StateCode(m.state.Value())

	switch m.direction {
	case domain.DirectionSale:
		sim.Sale = &domain.SaleInput{
			Amount:           amounts[fieldAmount],
			Freight:          amounts[fieldFreight],
			DestinationState: state,
			Imported:         m.imported,
			FinalConsumer:    m.finalConsumer,
		}
	default:
		sim.Purchase = &domain.PurchaseInput{
			AmountLocal:   amounts[fieldAmountLocal],
			AmountRemote:  amounts[fieldAmountRemote],
			FreightLocal:  amounts[fieldFreightLocal],
			FreightRemote: amounts[fieldFreightRemote],
			OriginState:   state,
			Imported:      m.imported,
		}
	}
	return sim, nil
}

// View renders the form scene
func (m *FormModel) View() string {
	var rows []string

	current := m.focused()
	for _, f := range m.fields() {
		label := fieldLabels[f]
		if f == fieldState {
			label = "Origin state"
			if m.direction == domain.DirectionSale {
				label = "Destination state"
			}
		}

		labelStyle := tuistyles.FieldLabelStyle
		if f == current {
			labelStyle = tuistyles.FocusedLabelStyle
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), m.renderValue(f, f == current)))
	}

	if m.direction == domain.DirectionPurchase && m.imported {
		rows = append(rows, "", tuistyles.InfoStyle.Render("Imported goods use the 4% interstate rate; the origin state is ignored."))
	}
	if m.err != nil {
		rows = append(rows, "", tuistyles.ErrorStyle.Render("✗ "+m.err.Error()))
	}

	rows = append(rows, "", renderFormHelp())

	return tuistyles.BorderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *FormModel) renderValue(f field, focused bool) string {
	switch f {
	case fieldDirection:
		opts := components.NewSelector([]components.Option{
			{Value: string(domain.DirectionPurchase), Label: "Purchase (local vs remote)"},
			{Value: string(domain.DirectionSale), Label: "Sale (ICMS split)"},
		})
		opts.Select(string(m.direction))
		return opts.Render(focused)
	case fieldState:
		return m.state.Render(focused)
	case fieldImported:
		return components.Toggle(m.imported, focused)
	case fieldFinalConsumer:
		return components.Toggle(m.finalConsumer, focused)
	default:
		return m.inputs[f].View()
	}
}

func renderFormHelp() string {
	return tuistyles.SubtitleStyle.Render("tab/↑↓ move • ←/→/space change • enter calculate")
}
