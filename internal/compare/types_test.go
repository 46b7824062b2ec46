package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/difal/internal/calculation"
	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePurchase() domain.PurchaseInput {
	return domain.PurchaseInput{
		AmountLocal:   decimal.NewFromInt(100),
		AmountRemote:  decimal.NewFromInt(100),
		FreightLocal:  decimal.NewFromInt(10),
		FreightRemote: decimal.NewFromInt(10),
		OriginState:   domain.SP,
	}
}

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateMetrics(domain.SP, &domain.PurchaseResult{
		OriginRate:  decimal.NewFromInt(7),
		DIFAL:       decimal.NewFromInt(13),
		LocalTotal:  decimal.NewFromInt(110),
		RemoteTotal: decimal.NewFromInt(123),
		Verdict:     domain.VerdictLocal,
	})

	assert.Equal(t, domain.SP, result.OriginState)
	assert.Equal(t, "São Paulo", result.StateName)
	assert.True(t, result.SavingsVsLocal.Equal(decimal.NewFromInt(-13)))

	other := result
	other.RemoteTotal = decimal.NewFromInt(118)
	compared := calc.CalculateComparison(other, result)
	assert.True(t, compared.DiffFromBase.Equal(decimal.NewFromInt(-5)))
}

func TestCompareOrigins_AllStates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.CompareOrigins(context.Background(), basePurchase(), CompareOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.SP, compSet.BaseOrigin)
	require.NotNil(t, compSet.BaseResult)
	assert.True(t, compSet.BaseResult.RemoteTotal.Equal(decimal.NewFromInt(123)))
	require.Len(t, compSet.AlternativeResults, 26)

	// 12% origins leave an 8% differential: 100 + 10 + 8
	first := compSet.AlternativeResults[0]
	assert.Equal(t, domain.AC, first.OriginState)
	assert.True(t, first.RemoteTotal.Equal(decimal.NewFromInt(118)))
	assert.True(t, first.DiffFromBase.Equal(decimal.NewFromInt(-5)))

	for i := 1; i < len(compSet.AlternativeResults); i++ {
		prev, cur := compSet.AlternativeResults[i-1], compSet.AlternativeResults[i]
		assert.True(t, prev.RemoteTotal.LessThanOrEqual(cur.RemoteTotal), "alternatives must be sorted")
		assert.NotEqual(t, domain.SP, cur.OriginState)
	}

	assert.Equal(t, domain.AC, compSet.Cheapest().OriginState)
	require.Len(t, compSet.Recommendations, 2)
	assert.Contains(t, compSet.Recommendations[0], "Best Origin: AC (Acre)")
	assert.Contains(t, compSet.Recommendations[1], "Buy Local")
}

func TestCompareOrigins_Subset(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	in := basePurchase()
	in.AmountLocal = decimal.NewFromInt(200)

	compSet, err := engine.CompareOrigins(context.Background(), in, CompareOptions{
		States: []domain.StateCode{domain.SP, domain.MG, domain.BA, domain.MG},
	})
	require.NoError(t, err)

	require.Len(t, compSet.AlternativeResults, 2, "base and duplicates are skipped")
	assert.Equal(t, domain.BA, compSet.AlternativeResults[0].OriginState)
	assert.Equal(t, domain.MG, compSet.AlternativeResults[1].OriginState)
	assert.Contains(t, compSet.Recommendations[1], "Buy Remote: buying from BA")
}

func TestCompareOrigins_BaseAlreadyCheapest(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	in := basePurchase()
	in.OriginState = domain.BA

	compSet, err := engine.CompareOrigins(context.Background(), in, CompareOptions{
		States: []domain.StateCode{domain.SP, domain.RJ},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BA, compSet.Cheapest().OriginState)
	assert.Contains(t, compSet.Recommendations[0], "already the cheapest")
}

func TestCompareOrigins_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	in := basePurchase()
	in.OriginState = "XX"
	_, err := engine.CompareOrigins(context.Background(), in, CompareOptions{})
	assert.ErrorIs(t, err, domain.ErrUnknownState)

	_, err = engine.CompareOrigins(context.Background(), basePurchase(), CompareOptions{States: []domain.StateCode{"ZZ"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origin ZZ")

	in = basePurchase()
	in.Imported = true
	_, err = engine.CompareOrigins(context.Background(), in, CompareOptions{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.CompareOrigins(ctx, basePurchase(), CompareOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareOrigins_TieWithLocal(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	in := basePurchase()
	// GO pays 12% interstate: 100 + 10 freight + 8 DIFAL
	in.AmountLocal = decimal.NewFromInt(108)

	compSet, err := engine.CompareOrigins(context.Background(), in, CompareOptions{
		States: []domain.StateCode{domain.GO},
	})
	require.NoError(t, err)

	best := compSet.Cheapest()
	assert.Equal(t, domain.GO, best.OriginState)
	assert.True(t, best.SavingsVsLocal.IsZero())
	require.Len(t, compSet.Recommendations, 2)
	assert.Equal(t, "Tie: buying from GO costs the same as buying locally, DIFAL included", compSet.Recommendations[1])
	assert.NotContains(t, compSet.Recommendations[1], "beats every origin")
}

func TestGenerateRecommendations_NoBase(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
}
