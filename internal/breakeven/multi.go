package breakeven

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/output"
)

// MultiOriginResult holds break-even prices for one purchase priced from
// several origin states
type MultiOriginResult struct {
	Results         []RemotePriceResult `json:"results"`
	Best            *RemotePriceResult  `json:"best,omitempty"`
	Recommendations []string            `json:"recommendations"`
}

// RemotePriceByOrigin solves RemotePrice for every listed origin, or for all
// states when origins is empty. Results are ordered by highest break-even
// price first; ties keep state-code order.
func (s *Solver) RemotePriceByOrigin(ctx context.Context, in domain.PurchaseInput, origins []domain.StateCode) (*MultiOriginResult, error) {
	if in.Imported {
		return nil, &BreakEvenError{
			Operation: "remote_price_by_origin",
			Message:   "imported goods use a single interstate rate regardless of origin",
		}
	}
	if len(origins) == 0 {
		origins = domain.AllStates()
	}

	seen := make(map[domain.StateCode]bool, len(origins))
	results := make([]RemotePriceResult, 0, len(origins))

	for _, origin := range origins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if seen[origin] {
			continue
		}
		seen[origin] = true

		candidate := in
		candidate.OriginState = origin

		result, err := s.RemotePrice(candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to solve origin %s: %w", origin, err)
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "remote_price_by_origin",
			Message:   "no origins to evaluate",
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].MaxRemoteAmount.Equal(results[j].MaxRemoteAmount) {
			return results[i].MaxRemoteAmount.GreaterThan(results[j].MaxRemoteAmount)
		}
		return results[i].Input.OriginState < results[j].Input.OriginState
	})

	multi := &MultiOriginResult{Results: results, Best: &results[0]}
	multi.Recommendations = s.generateMultiOriginRecommendations(multi)
	return multi, nil
}

func (s *Solver) generateMultiOriginRecommendations(result *MultiOriginResult) []string {
	var recommendations []string

	best := result.Best
	if best == nil {
		return recommendations
	}
	if !best.Feasible {
		return append(recommendations, "Remote freight exceeds the local total from every origin; buy locally")
	}

	recommendations = append(recommendations, fmt.Sprintf("Most room: %s tolerates a remote price up to %s",
		best.Input.OriginState, output.FormatCurrency(best.MaxRemoteAmount)))

	worst := result.Results[len(result.Results)-1]
	if spread := best.MaxRemoteAmount.Sub(worst.MaxRemoteAmount); spread.IsPositive() {
		recommendations = append(recommendations, fmt.Sprintf("Origin choice moves the break-even price by up to %s",
			output.FormatCurrency(spread)))
	}

	return recommendations
}
