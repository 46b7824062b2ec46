package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warnings []string
	debug    int
}

func (r *recordingLogger) Debugf(string, ...any) { r.debug++ }
func (r *recordingLogger) Infof(string, ...any)  {}
func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Errorf(string, ...any) {}

func TestCalculate_Dispatch(t *testing.T) {
	engine := NewCalculationEngine()
	purchase := samplePurchase()
	sale := saleInput(true)

	outcome := engine.Calculate(domain.Simulation{Name: "p", Direction: domain.DirectionPurchase, Purchase: &purchase})
	require.NoError(t, outcome.Err)
	require.NotNil(t, outcome.Purchase)
	assert.Nil(t, outcome.Sale)
	assert.Equal(t, "local is more advantageous", outcome.Fields()[6].Text)

	outcome = engine.Calculate(domain.Simulation{Name: "s", Direction: domain.DirectionSale, Sale: &sale})
	require.NoError(t, outcome.Err)
	require.NotNil(t, outcome.Sale)
	assert.Len(t, outcome.Fields(), 6)
}

func TestCalculate_Errors(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	tests := []struct {
		name    string
		sim     domain.Simulation
		wantErr string
	}{
		{"missing purchase block", domain.Simulation{Name: "a", Direction: domain.DirectionPurchase}, "purchase input is required"},
		{"missing sale block", domain.Simulation{Name: "b", Direction: domain.DirectionSale}, "sale input is required"},
		{"bad direction", domain.Simulation{Name: "c", Direction: "rent"}, "unknown direction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := engine.Calculate(tt.sim)
			require.Error(t, outcome.Err)
			assert.Contains(t, outcome.Err.Error(), tt.wantErr)
			assert.Empty(t, outcome.Fields())
		})
	}
	require.Len(t, logger.warnings, 3)
	assert.Equal(t, `simulation "a" failed: purchase input is required`, logger.warnings[0])
	assert.Equal(t, `simulation "b" failed: sale input is required`, logger.warnings[1])
	assert.Equal(t, `simulation "c" failed: unknown direction "rent"`, logger.warnings[2])
}

func TestRunSimulations_KeepsOrderAndIsolatesErrors(t *testing.T) {
	engine := NewCalculationEngine()
	good := samplePurchase()
	bad := samplePurchase()
	bad.OriginState = "XX"

	outcomes := engine.RunSimulations([]domain.Simulation{
		{Name: "first", Direction: domain.DirectionPurchase, Purchase: &good},
		{Name: "second", Direction: domain.DirectionPurchase, Purchase: &bad},
		{Name: "third", Direction: domain.DirectionPurchase, Purchase: &good},
	})

	require.Len(t, outcomes, 3)
	assert.Equal(t, "first", outcomes[0].Simulation.Name)
	assert.NoError(t, outcomes[0].Err)
	assert.ErrorIs(t, outcomes[1].Err, domain.ErrUnknownState)
	assert.NoError(t, outcomes[2].Err)
}

func TestSetLogger_NilRestoresNop(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)
	_, err := engine.CalculatePurchase(samplePurchase())
	require.NoError(t, err)
	assert.Equal(t, 1, logger.debug)

	engine.SetLogger(nil)
	_, err = engine.CalculatePurchase(samplePurchase())
	require.NoError(t, err)
	assert.Equal(t, 1, logger.debug)
}

func TestZeroValueEngineLogsSafely(t *testing.T) {
	engine := &CalculationEngine{Rates: NewCalculationEngine().Rates, DestinationRate: d(20)}
	_, err := engine.CalculatePurchase(samplePurchase())
	assert.NoError(t, err)
}
