package tuimsg

import (
	"github.com/rgehrsitz/difal/internal/domain"
)

// CalculateRequestedMsg asks the application to run a simulation
type CalculateRequestedMsg struct {
	Simulation domain.Simulation
}

// CompareRequestedMsg asks the application to price a purchase from every origin
type CompareRequestedMsg struct {
	Input domain.PurchaseInput
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
