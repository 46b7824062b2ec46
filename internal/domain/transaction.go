package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Direction selects which DIFAL rule set applies to a simulation
type Direction string

const (
	DirectionPurchase Direction = "purchase"
	DirectionSale     Direction = "sale"
)

// ParseDirection accepts "purchase"/"sale" and the Portuguese "compra"/"venda"
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "purchase", "compra":
		return DirectionPurchase, nil
	case "sale", "venda":
		return DirectionSale, nil
	default:
		return "", fmt.Errorf("unknown direction %q (expected purchase or sale)", raw)
	}
}

// UnmarshalText lets yaml and json decode directions through ParseDirection
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PurchaseInput compares buying a product locally against buying it from
// another state and paying the differential on entry.
type PurchaseInput struct {
	AmountLocal   decimal.Decimal `yaml:"amount_local" json:"amount_local"`
	AmountRemote  decimal.Decimal `yaml:"amount_remote" json:"amount_remote"`
	FreightLocal  decimal.Decimal `yaml:"freight_local" json:"freight_local"`
	FreightRemote decimal.Decimal `yaml:"freight_remote" json:"freight_remote"`
	OriginState   StateCode       `yaml:"origin_state" json:"origin_state"`
	Imported      bool            `yaml:"imported" json:"imported"`
}

// Fields returns the input as an ordered record for export
func (in PurchaseInput) Fields() Record {
	return Record{
		AmountField("amount_local", "Local amount (R$)", in.AmountLocal),
		AmountField("amount_remote", "Remote amount (R$)", in.AmountRemote),
		AmountField("freight_local", "Local freight (R$)", in.FreightLocal),
		AmountField("freight_remote", "Remote freight (R$)", in.FreightRemote),
		TextField("origin_state", "Origin state", string(in.OriginState)),
		FlagField("imported", "Imported", in.Imported),
	}
}

// SaleInput describes an interstate sale shipped to DestinationState
type SaleInput struct {
	Amount           decimal.Decimal `yaml:"amount" json:"amount"`
	Freight          decimal.Decimal `yaml:"freight" json:"freight"`
	DestinationState StateCode       `yaml:"destination_state" json:"destination_state"`
	Imported         bool            `yaml:"imported" json:"imported"`
	FinalConsumer    bool            `yaml:"final_consumer" json:"final_consumer"`
}

// Fields returns the input as an ordered record for export
func (in SaleInput) Fields() Record {
	return Record{
		AmountField("amount", "Sale amount (R$)", in.Amount),
		AmountField("freight", "Freight (R$)", in.Freight),
		TextField("destination_state", "Destination state", string(in.DestinationState)),
		FlagField("imported", "Imported", in.Imported),
		FlagField("final_consumer", "Final consumer", in.FinalConsumer),
	}
}

// Simulation is one named calculation request, as read from a simulation file
type Simulation struct {
	Name      string         `yaml:"name" json:"name"`
	Direction Direction      `yaml:"direction" json:"direction"`
	Purchase  *PurchaseInput `yaml:"purchase,omitempty" json:"purchase,omitempty"`
	Sale      *SaleInput     `yaml:"sale,omitempty" json:"sale,omitempty"`
}

// Fields returns the input record matching the simulation direction
func (s Simulation) Fields() Record {
	switch {
	case s.Direction == DirectionPurchase && s.Purchase != nil:
		return s.Purchase.Fields()
	case s.Direction == DirectionSale && s.Sale != nil:
		return s.Sale.Fields()
	default:
		return Record{}
	}
}

// SimulationFile is the top-level shape of a simulation YAML document
type SimulationFile struct {
	RatesFile   string       `yaml:"rates_file,omitempty" json:"rates_file,omitempty"`
	Simulations []Simulation `yaml:"simulations" json:"simulations"`
}
