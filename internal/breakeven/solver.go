package breakeven

import (
	"github.com/rgehrsitz/difal/internal/calculation"
	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Solver finds break-even prices for purchase simulations
type Solver struct {
	CalcEngine *calculation.CalculationEngine
}

// NewSolver creates a solver on top of a calculation engine
func NewSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return &Solver{CalcEngine: calcEngine}
}

// RemotePrice solves
//
//	amountRemote * (1 + differentialRate/100) + freightRemote = localTotal
//
// for amountRemote. The answer is truncated to cents so that buying at the
// returned price never costs more than buying locally.
func (s *Solver) RemotePrice(in domain.PurchaseInput) (*RemotePriceResult, error) {
	if s.CalcEngine == nil {
		return nil, &BreakEvenError{Operation: "remote_price", Message: "calculation engine is required"}
	}

	current, err := s.CalcEngine.CalculatePurchase(in)
	if err != nil {
		return nil, &BreakEvenError{Operation: "remote_price", Message: "failed to evaluate purchase", Cause: err}
	}

	factor := decimal.NewFromInt(1).Add(current.DifferentialRate.Div(hundred))
	if !factor.IsPositive() {
		return nil, &BreakEvenError{
			Operation: "remote_price",
			Message:   "differential rate of " + current.DifferentialRate.String() + "% has no break-even price",
		}
	}

	localTotal := in.AmountLocal.Add(in.FreightLocal)
	available := localTotal.Sub(in.FreightRemote)

	result := &RemotePriceResult{
		Input:            in,
		LocalTotal:       domain.RoundCurrency(localTotal),
		DifferentialRate: current.DifferentialRate,
		MaxRemoteAmount:  decimal.Zero,
	}
	if available.IsPositive() {
		result.Feasible = true
		result.MaxRemoteAmount = available.Div(factor).Truncate(2)
	}
	result.Headroom = result.MaxRemoteAmount.Sub(in.AmountRemote)

	return result, nil
}
