package rates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultTablesCoverEveryState(t *testing.T) {
	p := Default()

	for name, table := range map[string]Table{"interstate": p.Interstate(), "internal": p.Internal()} {
		t.Run(name, func(t *testing.T) {
			assert.Len(t, table, 27)
			for _, code := range domain.AllStates() {
				rate, ok := table.Lookup(code)
				require.True(t, ok, "missing %s", code)
				assert.True(t, rate.IsPositive(), "%s has non-positive rate %s", code, rate)
			}
		})
	}
}

func TestDefaultInterstateRates(t *testing.T) {
	seven := map[domain.StateCode]bool{
		domain.MG: true, domain.PR: true, domain.RS: true,
		domain.RJ: true, domain.SC: true, domain.SP: true,
	}

	table := Default().Interstate()
	for _, code := range domain.AllStates() {
		expected := decimal.NewFromInt(12)
		if seven[code] {
			expected = decimal.NewFromInt(7)
		}
		assert.True(t, table[code].Equal(expected), "%s: expected %s, got %s", code, expected, table[code])
	}
}

func TestDefaultInternalRatesWithinPublishedRange(t *testing.T) {
	low := decimal.NewFromInt(17)
	high := decimal.NewFromFloat(22.5)

	for code, rate := range Default().Internal() {
		assert.True(t, rate.GreaterThanOrEqual(low) && rate.LessThanOrEqual(high),
			"%s internal rate %s outside [17, 22.5]", code, rate)
	}

	goRate, _ := Default().InternalRate(domain.GO)
	assert.True(t, goRate.Equal(decimal.NewFromInt(19)))
	dfRate, _ := Default().InternalRate(domain.DF)
	assert.True(t, dfRate.Equal(PurchaseDestinationRate))
}

func TestAccessorsReturnCopies(t *testing.T) {
	table := Default().Interstate()
	table[domain.SP] = decimal.NewFromInt(99)
	delete(table, domain.AC)

	rate, ok := Default().InterstateRate(domain.SP)
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(7)))
	_, ok = Default().InterstateRate(domain.AC)
	assert.True(t, ok)
}

func TestUnknownCodeLookup(t *testing.T) {
	_, ok := Default().InterstateRate("XX")
	assert.False(t, ok)
	_, ok = Default().InternalRate("XX")
	assert.False(t, ok)
}

func TestImportedRate(t *testing.T) {
	assert.True(t, Default().ImportedRate().Equal(decimal.NewFromInt(4)))
}

func fullAsset() Asset {
	asset := Asset{DefaultInterstateRate: decimal.NewFromInt(12)}
	for _, code := range domain.AllStates() {
		asset.States = append(asset.States, StateRates{Code: code, Internal: decimal.NewFromInt(18)})
	}
	return asset
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *Asset)
		wantErr string
	}{
		{
			name:   "complete asset",
			mutate: func(a *Asset) {},
		},
		{
			name:    "missing state",
			mutate:  func(a *Asset) { a.States = a.States[1:] },
			wantErr: "state AC missing",
		},
		{
			name: "duplicate state",
			mutate: func(a *Asset) {
				a.States = append(a.States, StateRates{Code: domain.SP, Internal: decimal.NewFromInt(18)})
			},
			wantErr: "listed more than once",
		},
		{
			name: "unknown state",
			mutate: func(a *Asset) {
				a.States[0].Code = "XX"
			},
			wantErr: `state "XX" not found`,
		},
		{
			name: "zero internal rate",
			mutate: func(a *Asset) {
				a.States[3].Internal = decimal.Zero
			},
			wantErr: "internal rate must be in (0, 100]",
		},
		{
			name: "no interstate rate and no default",
			mutate: func(a *Asset) {
				a.DefaultInterstateRate = decimal.Zero
			},
			wantErr: "interstate rate must be in (0, 100]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := fullAsset()
			tt.mutate(&asset)
			err := Validate(asset)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.yaml")
	require.NoError(t, os.WriteFile(path, embeddedRates, 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Interstate(), p.Interstate())
	assert.Equal(t, "2025-04-01", p.Metadata().LastUpdated)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsIncompleteData(t *testing.T) {
	_, err := Parse([]byte("default_interstate_rate: 12\nstates:\n  - {code: SP, internal: 18}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing from rate data")
}

func TestAssetRoundTrip(t *testing.T) {
	asset := Default().Asset()
	require.Len(t, asset.States, 27)
	assert.Equal(t, domain.AC, asset.States[0].Code)

	data, err := yaml.Marshal(asset)
	require.NoError(t, err)

	p, err := Parse(data)
	require.NoError(t, err)
	for _, code := range domain.AllStates() {
		want, _ := Default().InternalRate(code)
		got, ok := p.InternalRate(code)
		require.True(t, ok)
		assert.True(t, want.Equal(got), "internal rate for %s", code)

		want, _ = Default().InterstateRate(code)
		got, _ = p.InterstateRate(code)
		assert.True(t, want.Equal(got), "interstate rate for %s", code)
	}
	assert.Equal(t, Default().Metadata(), p.Metadata())
}
