package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/difal/internal/domain"
)

// PurchaseTransform defines the interface for all purchase what-if transformations.
// Transforms are composable operations that modify a purchase in predictable ways,
// so a quote can be re-evaluated with a different origin, price or freight.
type PurchaseTransform interface {
	// Apply transforms a base purchase and returns the modified copy.
	Apply(base domain.PurchaseInput) (domain.PurchaseInput, error)

	// Name returns a short identifier for this transform (e.g., "set_origin").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base domain.PurchaseInput) error
}

// ApplyTransforms applies a sequence of transforms to a base purchase.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.PurchaseInput, transforms []PurchaseTransform) (domain.PurchaseInput, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.PurchaseInput{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.PurchaseInput{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.PurchaseInput{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe joins the descriptions of transforms in application order
func Describe(transforms []PurchaseTransform) string {
	parts := make([]string, 0, len(transforms))
	for _, t := range transforms {
		parts = append(parts, t.Description())
	}
	return strings.Join(parts, "; ")
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
