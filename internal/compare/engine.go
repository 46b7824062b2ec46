package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/difal/internal/calculation"
	"github.com/rgehrsitz/difal/internal/domain"
)

// CompareEngine evaluates one purchase against many origin states
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	States []domain.StateCode // Origins to compare; empty means every state
}

// CompareOrigins runs the purchase for its own origin and for each
// alternative origin, sorting alternatives by remote total
func (ce *CompareEngine) CompareOrigins(
	ctx context.Context,
	input domain.PurchaseInput,
	options CompareOptions,
) (*ComparisonSet, error) {
	if input.Imported {
		return nil, fmt.Errorf("imported goods pay the same interstate rate from every origin; nothing to compare")
	}

	baseResult, err := ce.CalcEngine.CalculatePurchase(input)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base origin: %w", err)
	}
	base := ce.MetricsCalculator.CalculateMetrics(input.OriginState, baseResult)

	states := options.States
	if len(states) == 0 {
		states = domain.AllStates()
	}

	alternatives := []ComparisonResult{}
	seen := map[domain.StateCode]bool{input.OriginState: true}
	for _, state := range states {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if seen[state] {
			continue
		}
		seen[state] = true

		alt := input
		alt.OriginState = state
		result, err := ce.CalcEngine.CalculatePurchase(alt)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate origin %s: %w", state, err)
		}

		metrics := ce.MetricsCalculator.CalculateMetrics(state, result)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(metrics, base))
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		if !alternatives[i].RemoteTotal.Equal(alternatives[j].RemoteTotal) {
			return alternatives[i].RemoteTotal.LessThan(alternatives[j].RemoteTotal)
		}
		return alternatives[i].OriginState < alternatives[j].OriginState
	})

	compSet := &ComparisonSet{
		Input:              input,
		BaseOrigin:         input.OriginState,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
