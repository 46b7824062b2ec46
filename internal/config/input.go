package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/rates"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of simulation files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads simulations from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates simulation data
func (ip *InputParser) Parse(data []byte) (*domain.SimulationFile, error) {
	var file domain.SimulationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&file); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &file, nil
}

// LoadFromFileWithRates loads simulations together with the rate provider
// they should run against. ratesFile overrides the file's own rates_file
// entry; when neither is set the embedded tables are used. A relative
// rates_file is resolved against the simulation file's directory.
func (ip *InputParser) LoadFromFileWithRates(filename, ratesFile string) (*domain.SimulationFile, *rates.Provider, error) {
	file, err := ip.LoadFromFile(filename)
	if err != nil {
		return nil, nil, err
	}

	path := ratesFile
	if path == "" && file.RatesFile != "" {
		path = file.RatesFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(filename), path)
		}
	}
	if path == "" {
		return file, rates.Default(), nil
	}

	provider, err := rates.LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rates: %w", err)
	}
	return file, provider, nil
}

// ValidateConfiguration checks every simulation and normalizes state codes
// in place (so "sao paulo" becomes SP)
func (ip *InputParser) ValidateConfiguration(file *domain.SimulationFile) error {
	if len(file.Simulations) == 0 {
		return fmt.Errorf("no simulations provided")
	}

	names := make(map[string]int, len(file.Simulations))
	for i := range file.Simulations {
		sim := &file.Simulations[i]
		if sim.Name == "" {
			sim.Name = fmt.Sprintf("simulation-%d", i+1)
		}
		if prev, ok := names[sim.Name]; ok {
			return fmt.Errorf("simulation %d: name %q already used by simulation %d", i, sim.Name, prev)
		}
		names[sim.Name] = i

		if err := ip.validateSimulation(sim); err != nil {
			return fmt.Errorf("simulation %d (%s) validation failed: %w", i, sim.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateSimulation(sim *domain.Simulation) error {
	switch sim.Direction {
	case domain.DirectionPurchase:
		if sim.Purchase == nil {
			return fmt.Errorf("purchase block is required for direction purchase")
		}
		if sim.Sale != nil {
			return fmt.Errorf("sale block is not allowed for direction purchase")
		}
		return ip.ValidatePurchase(sim.Purchase)
	case domain.DirectionSale:
		if sim.Sale == nil {
			return fmt.Errorf("sale block is required for direction sale")
		}
		if sim.Purchase != nil {
			return fmt.Errorf("purchase block is not allowed for direction sale")
		}
		return ip.ValidateSale(sim.Sale)
	case "":
		return fmt.Errorf("direction is required")
	default:
		return fmt.Errorf("unknown direction %q", sim.Direction)
	}
}

// ValidatePurchase checks amounts and normalizes the origin state.
// The origin of an imported purchase is ignored, so any value is accepted.
func (ip *InputParser) ValidatePurchase(in *domain.PurchaseInput) error {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"amount_local", in.AmountLocal},
		{"amount_remote", in.AmountRemote},
		{"freight_local", in.FreightLocal},
		{"freight_remote", in.FreightRemote},
	}
	for _, a := range amounts {
		if err := validateAmount(a.name, a.value); err != nil {
			return err
		}
	}

	code, err := domain.ParseStateCode(string(in.OriginState))
	if err != nil {
		if in.Imported {
			return nil
		}
		return fmt.Errorf("origin_state: %w", err)
	}
	in.OriginState = code
	return nil
}

// ValidateSale checks amounts and normalizes the destination state
func (ip *InputParser) ValidateSale(in *domain.SaleInput) error {
	if err := validateAmount("amount", in.Amount); err != nil {
		return err
	}
	if err := validateAmount("freight", in.Freight); err != nil {
		return err
	}

	code, err := domain.ParseStateCode(string(in.DestinationState))
	if err != nil {
		return fmt.Errorf("destination_state: %w", err)
	}
	in.DestinationState = code
	return nil
}

func validateAmount(name string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%s cannot be negative, got %s", name, value.String())
	}
	return nil
}
