package compare

import (
	"fmt"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is a purchase simulation evaluated for one origin state
type ComparisonResult struct {
	OriginState domain.StateCode `json:"originState"`
	StateName   string           `json:"stateName"`

	// Key Metrics
	OriginRate  decimal.Decimal `json:"originRate"`
	DIFAL       decimal.Decimal `json:"difal"`
	LocalTotal  decimal.Decimal `json:"localTotal"`
	RemoteTotal decimal.Decimal `json:"remoteTotal"`
	Verdict     domain.Verdict  `json:"verdict"`

	// SavingsVsLocal is LocalTotal - RemoteTotal; positive when buying
	// from this origin is cheaper than buying locally
	SavingsVsLocal decimal.Decimal `json:"savingsVsLocal"`

	// Comparison to Base
	DiffFromBase decimal.Decimal `json:"diffFromBase"`
}

// Fields returns the row as an ordered export record
func (r ComparisonResult) Fields() domain.Record {
	return domain.Record{
		domain.TextField("origin_state", "Origin", string(r.OriginState)),
		domain.TextField("state_name", "State", r.StateName),
		domain.RateField("origin_rate", "Origin rate (%)", r.OriginRate),
		domain.AmountField("difal", "DIFAL (R$)", r.DIFAL),
		domain.AmountField("remote_total", "Remote total (R$)", r.RemoteTotal),
		domain.AmountField("local_total", "Local total (R$)", r.LocalTotal),
		domain.AmountField("savings_vs_local", "Savings vs local (R$)", r.SavingsVsLocal),
		domain.AmountField("diff_from_base", "Difference from base (R$)", r.DiffFromBase),
		domain.TextField("verdict", "Comparison", string(r.Verdict)),
	}
}

// ComparisonSet is the base origin plus every alternative, cheapest first
type ComparisonSet struct {
	Input              domain.PurchaseInput `json:"input"`
	BaseOrigin         domain.StateCode     `json:"baseOrigin"`
	BaseResult         *ComparisonResult    `json:"baseResult"`
	AlternativeResults []ComparisonResult   `json:"alternativeResults"`
	Recommendations    []string             `json:"recommendations"`
}

// MetricsCalculator turns purchase results into comparison rows
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics builds the comparison row for one origin
func (mc *MetricsCalculator) CalculateMetrics(origin domain.StateCode, result *domain.PurchaseResult) ComparisonResult {
	return ComparisonResult{
		OriginState:    origin,
		StateName:      origin.Name(),
		OriginRate:     result.OriginRate,
		DIFAL:          result.DIFAL,
		LocalTotal:     result.LocalTotal,
		RemoteTotal:    result.RemoteTotal,
		Verdict:        result.Verdict,
		SavingsVsLocal: result.LocalTotal.Sub(result.RemoteTotal),
	}
}

// CalculateComparison fills in the deltas against the base origin
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.DiffFromBase = alt.RemoteTotal.Sub(base.RemoteTotal)
	return alt
}

// Cheapest returns the row with the lowest remote total, base included
func (cs *ComparisonSet) Cheapest() *ComparisonResult {
	best := cs.BaseResult
	for i := range cs.AlternativeResults {
		alt := &cs.AlternativeResults[i]
		if best == nil || alt.RemoteTotal.LessThan(best.RemoteTotal) {
			best = alt
		}
	}
	return best
}

// GenerateRecommendations summarizes a comparison set
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil {
		return recommendations
	}

	base := compSet.BaseResult
	best := compSet.Cheapest()

	if best != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Origin: %s (%s) costs %s less than buying from %s",
			best.OriginState, best.StateName,
			output.FormatCurrency(base.RemoteTotal.Sub(best.RemoteTotal)), base.OriginState))
	} else {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Origin: %s is already the cheapest origin", base.OriginState))
	}

	switch {
	case best.SavingsVsLocal.IsPositive():
		recommendations = append(recommendations, fmt.Sprintf(
			"Buy Remote: buying from %s saves %s over buying locally, DIFAL included",
			best.OriginState, output.FormatCurrency(best.SavingsVsLocal)))
	case best.SavingsVsLocal.IsZero():
		recommendations = append(recommendations, fmt.Sprintf(
			"Tie: buying from %s costs the same as buying locally, DIFAL included",
			best.OriginState))
	default:
		recommendations = append(recommendations, fmt.Sprintf(
			"Buy Local: buying locally beats every origin by at least %s",
			output.FormatCurrency(best.SavingsVsLocal.Neg())))
	}

	return recommendations
}
