package breakeven

import (
	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/shopspring/decimal"
)

// RemotePriceResult is the highest remote product price that still costs
// no more than buying locally, once freight and DIFAL are added
type RemotePriceResult struct {
	Input            domain.PurchaseInput `json:"input"`
	LocalTotal       decimal.Decimal      `json:"local_total"`
	DifferentialRate decimal.Decimal      `json:"differential_rate"`
	MaxRemoteAmount  decimal.Decimal      `json:"max_remote_amount"`

	// Feasible is false when remote freight alone already exceeds the
	// local total; MaxRemoteAmount is zero in that case
	Feasible bool `json:"feasible"`

	// Headroom is MaxRemoteAmount - Input.AmountRemote; negative when the
	// quoted remote price is already too high
	Headroom decimal.Decimal `json:"headroom"`
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
