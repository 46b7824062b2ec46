package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/rates"
	"github.com/shopspring/decimal"
)

// RateSource supplies per-state rates to the engine
type RateSource interface {
	InterstateRate(code domain.StateCode) (decimal.Decimal, bool)
	InternalRate(code domain.StateCode) (decimal.Decimal, bool)
	ImportedRate() decimal.Decimal
}

// Logger receives diagnostic output from the engine
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

var hundred = decimal.NewFromInt(100)

// CalculationEngine runs DIFAL simulations against a rate source.
// It holds no mutable state and may be shared between goroutines.
type CalculationEngine struct {
	Rates RateSource

	// DestinationRate is the buyer state's internal rate for purchases
	DestinationRate decimal.Decimal

	logger Logger
}

// NewCalculationEngine creates an engine backed by the embedded rate tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRates(rates.Default())
}

// NewCalculationEngineWithRates creates an engine backed by src
func NewCalculationEngineWithRates(src RateSource) *CalculationEngine {
	return &CalculationEngine{
		Rates:           src,
		DestinationRate: rates.PurchaseDestinationRate,
		logger:          nopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	ce.logger = l
}

func (ce *CalculationEngine) log() Logger {
	if ce.logger == nil {
		return nopLogger{}
	}
	return ce.logger
}

// Calculate dispatches a simulation to the calculator for its direction.
// Errors are recorded on the outcome, never returned separately.
func (ce *CalculationEngine) Calculate(sim domain.Simulation) domain.Outcome {
	outcome := domain.Outcome{Simulation: sim}

	switch sim.Direction {
	case domain.DirectionPurchase:
		if sim.Purchase == nil {
			outcome.Err = errors.New("purchase input is required")
		} else {
			outcome.Purchase, outcome.Err = ce.CalculatePurchase(*sim.Purchase)
		}
	case domain.DirectionSale:
		if sim.Sale == nil {
			outcome.Err = errors.New("sale input is required")
		} else {
			outcome.Sale, outcome.Err = ce.CalculateSale(*sim.Sale)
		}
	default:
		outcome.Err = fmt.Errorf("unknown direction %q", sim.Direction)
	}

	if outcome.Err != nil {
		ce.log().Warnf("simulation %q failed: %v", sim.Name, outcome.Err)
	}
	return outcome
}

// RunSimulations calculates every simulation in order
func (ce *CalculationEngine) RunSimulations(sims []domain.Simulation) []domain.Outcome {
	outcomes := make([]domain.Outcome, 0, len(sims))
	for _, sim := range sims {
		outcomes = append(outcomes, ce.Calculate(sim))
	}
	return outcomes
}

// interstateRate resolves the rate charged by the origin side of a shipment.
// Imported goods bypass the table entirely.
func (ce *CalculationEngine) interstateRate(code domain.StateCode, imported bool) (decimal.Decimal, error) {
	if imported {
		return ce.Rates.ImportedRate(), nil
	}
	rate, ok := ce.Rates.InterstateRate(code)
	if !ok {
		return decimal.Zero, &domain.UnknownStateError{State: code, Table: "interstate"}
	}
	return rate, nil
}

func (ce *CalculationEngine) internalRate(code domain.StateCode) (decimal.Decimal, error) {
	rate, ok := ce.Rates.InternalRate(code)
	if !ok || rate.IsZero() {
		return decimal.Zero, &domain.UnknownStateError{State: code, Table: "internal"}
	}
	return rate, nil
}
