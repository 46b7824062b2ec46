// Package rates provides the ICMS reference tables shared by every DIFAL
// calculation. The default tables come from an embedded YAML asset and are
// validated when the package loads.
package rates

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed icms_rates.yaml
var embeddedRates []byte

var (
	// ImportedInterstateRate applies to interstate shipments of imported goods
	ImportedInterstateRate = decimal.NewFromInt(4)

	// PurchaseDestinationRate is the internal rate of the buyer's state (DF)
	// used by purchase simulations
	PurchaseDestinationRate = decimal.NewFromInt(20)
)

var defaultProvider = mustParse(embeddedRates)

// Table maps a state code to a percentage rate
type Table map[domain.StateCode]decimal.Decimal

// Lookup returns the rate for code
func (t Table) Lookup(code domain.StateCode) (decimal.Decimal, bool) {
	rate, ok := t[code]
	return rate, ok
}

func (t Table) clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Metadata describes where a rate asset came from
type Metadata struct {
	Description string `yaml:"description" json:"description"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
}

// StateRates is one row of a rate asset
type StateRates struct {
	Code       domain.StateCode `yaml:"code"`
	Interstate decimal.Decimal  `yaml:"interstate"`
	Internal   decimal.Decimal  `yaml:"internal"`
}

// Asset is the YAML shape of a rate file
type Asset struct {
	Metadata               Metadata        `yaml:"metadata"`
	DefaultInterstateRate  decimal.Decimal `yaml:"default_interstate_rate"`
	ImportedInterstateRate decimal.Decimal `yaml:"imported_interstate_rate"`
	States                 []StateRates    `yaml:"states"`
}

// Provider serves the interstate and internal tables of one rate asset.
// It is immutable after construction and safe for concurrent use.
type Provider struct {
	metadata     Metadata
	importedRate decimal.Decimal
	interstate   Table
	internal     Table
}

// Default returns the provider backed by the embedded rate asset
func Default() *Provider {
	return defaultProvider
}

// Parse builds a provider from YAML rate data
func Parse(data []byte) (*Provider, error) {
	var asset Asset
	if err := yaml.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("failed to parse rate data: %w", err)
	}
	return NewProvider(asset)
}

// LoadFile builds a provider from a YAML rate file on disk
func LoadFile(filename string) (*Provider, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate file %s: %w", filename, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rate file %s: %w", filename, err)
	}
	return p, nil
}

// NewProvider validates asset and expands it into lookup tables
func NewProvider(asset Asset) (*Provider, error) {
	if err := Validate(asset); err != nil {
		return nil, err
	}

	importedRate := asset.ImportedInterstateRate
	if importedRate.IsZero() {
		importedRate = ImportedInterstateRate
	}

	p := &Provider{
		metadata:     asset.Metadata,
		importedRate: importedRate,
		interstate:   make(Table, len(asset.States)),
		internal:     make(Table, len(asset.States)),
	}
	for _, row := range asset.States {
		interstate := row.Interstate
		if interstate.IsZero() {
			interstate = asset.DefaultInterstateRate
		}
		p.interstate[row.Code] = interstate
		p.internal[row.Code] = row.Internal
	}
	return p, nil
}

// Validate checks that every one of the 27 state codes appears exactly once
// with usable rates
func Validate(asset Asset) error {
	hundred := decimal.NewFromInt(100)
	seen := make(map[domain.StateCode]bool, len(asset.States))

	for i, row := range asset.States {
		if !row.Code.IsKnown() {
			return fmt.Errorf("row %d: %w", i, &domain.UnknownStateError{State: row.Code})
		}
		if seen[row.Code] {
			return fmt.Errorf("row %d: state %s listed more than once", i, row.Code)
		}
		seen[row.Code] = true

		interstate := row.Interstate
		if interstate.IsZero() {
			interstate = asset.DefaultInterstateRate
		}
		if !interstate.IsPositive() || interstate.GreaterThan(hundred) {
			return fmt.Errorf("state %s: interstate rate must be in (0, 100], got %s", row.Code, interstate)
		}
		if !row.Internal.IsPositive() || row.Internal.GreaterThan(hundred) {
			return fmt.Errorf("state %s: internal rate must be in (0, 100], got %s", row.Code, row.Internal)
		}
	}

	for _, code := range domain.AllStates() {
		if !seen[code] {
			return fmt.Errorf("state %s missing from rate data", code)
		}
	}
	return nil
}

// Interstate returns a copy of the interstate rate table
func (p *Provider) Interstate() Table {
	return p.interstate.clone()
}

// Internal returns a copy of the internal rate table
func (p *Provider) Internal() Table {
	return p.internal.clone()
}

// InterstateRate looks up a single interstate rate without copying the table
func (p *Provider) InterstateRate(code domain.StateCode) (decimal.Decimal, bool) {
	return p.interstate.Lookup(code)
}

// InternalRate looks up a single internal rate without copying the table
func (p *Provider) InternalRate(code domain.StateCode) (decimal.Decimal, bool) {
	return p.internal.Lookup(code)
}

// ImportedRate is the interstate rate for imported goods
func (p *Provider) ImportedRate() decimal.Decimal {
	return p.importedRate
}

// Metadata describes the loaded asset
func (p *Provider) Metadata() Metadata {
	return p.metadata
}

// Asset expands the provider back into a rate file with every rate spelled
// out, suitable for editing and loading with LoadFile
func (p *Provider) Asset() Asset {
	asset := Asset{
		Metadata:               p.metadata,
		ImportedInterstateRate: p.importedRate,
		States:                 make([]StateRates, 0, len(p.interstate)),
	}
	for _, code := range domain.AllStates() {
		asset.States = append(asset.States, StateRates{
			Code:       code,
			Interstate: p.interstate[code],
			Internal:   p.internal[code],
		})
	}
	return asset
}

func mustParse(data []byte) *Provider {
	p, err := Parse(data)
	if err != nil {
		panic("embedded rate data is invalid: " + err.Error())
	}
	return p
}
