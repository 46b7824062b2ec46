package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/rates"
)

// resetFlags restores every flag to its default so commands can be
// executed repeatedly in one process
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"DIFAL_LOG_LEVEL", "DIFAL_FORMAT", "DIFAL_RATES_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

var purchaseArgs = []string{
	"purchase", "--local", "100", "--remote", "100", "--freight-local", "10", "--freight-remote", "10", "--origin", "SP",
}

const simulationsYAML = `simulations:
  - name: compra-sp
    direction: purchase
    purchase: {amount_local: 100, amount_remote: 100, freight_local: 10, freight_remote: 10, origin_state: SP}
  - name: venda-ba
    direction: sale
    sale: {amount: 1000, freight: 0, destination_state: BA, final_consumer: true}
`

func writeSimulations(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(simulationsYAML), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := rootCmd

	assert.Equal(t, "difal", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("rates"))
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "DIFAL")
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"purchase", "sale", "run", "validate", "rates", "compare", "break-even", "what-if", "tui", "version",
	}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expectedCommands {
		assert.True(t, registered[name], "expected command %q to be registered", name)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := execute(t, "invalid-command")
	assert.Error(t, err)
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	_, err := execute(t, "rates", "--log-level", "loud")
	assert.Error(t, err)
}

func TestRootCommand_LogLevelFlagOverridesEnv(t *testing.T) {
	resetFlags(rootCmd)
	t.Setenv("DIFAL_LOG_LEVEL", "loud")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"rates", "--log-level", "warn"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "ICMS RATE TABLES")

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"rates"})
	assert.Error(t, rootCmd.Execute())
}

func TestPurchaseCommand(t *testing.T) {
	out, err := execute(t, purchaseArgs...)
	require.NoError(t, err)

	assert.Contains(t, out, "DIFAL SIMULATION REPORT")
	assert.Contains(t, out, "R$ 13,00")
	assert.Contains(t, out, "R$ 123,00")
	assert.Contains(t, out, "local is more advantageous")
	assert.Contains(t, out, "1 simulation(s), 0 failed")
}

func TestPurchaseCommand_JSON(t *testing.T) {
	out, err := execute(t, append(purchaseArgs, "--format", "json")...)
	require.NoError(t, err)

	var decoded struct {
		ID   string                      `json:"id"`
		Rows []map[string]json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Rows, 1)
	assert.NotEmpty(t, decoded.ID)
	assert.JSONEq(t, "13", string(decoded.Rows[0]["difal"]))
	assert.JSONEq(t, `"SP"`, string(decoded.Rows[0]["origin_state"]))
}

func TestPurchaseCommand_FormatFromEnv(t *testing.T) {
	resetFlags(rootCmd)
	t.Setenv("DIFAL_FORMAT", "csv")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(purchaseArgs)
	require.NoError(t, rootCmd.Execute())

	records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "name", records[0][0])
}

func TestPurchaseCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown origin", args: []string{"purchase", "--local", "1", "--remote", "1", "--origin", "XX"}},
		{name: "missing origin", args: []string{"purchase", "--local", "1", "--remote", "1"}},
		{name: "bad amount", args: []string{"purchase", "--local", "abc", "--origin", "SP"}},
		{name: "negative amount", args: []string{"purchase", "--local", "-1", "--origin", "SP"}},
		{name: "bad format", args: append(purchaseArgs, "--format", "pdf")},
		{name: "xlsx without output", args: append(purchaseArgs, "--format", "xlsx")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestPurchaseCommand_ImportedWithoutOrigin(t *testing.T) {
	out, err := execute(t, "purchase", "--local", "120", "--remote", "100", "--imported")
	require.NoError(t, err)
	// 20% destination less 4% imported rate
	assert.Contains(t, out, "R$ 16,00")
}

func TestPurchaseCommand_ImportedIgnoresOrigin(t *testing.T) {
	out, err := execute(t, "purchase", "--local", "120", "--remote", "100", "--origin", "XX", "--imported")
	require.NoError(t, err)
	assert.Contains(t, out, "R$ 16,00")
}

func TestSaleCommand(t *testing.T) {
	out, err := execute(t, "sale", "--amount", "1000", "--destination", "bahia", "--final-consumer")
	require.NoError(t, err)

	assert.Contains(t, out, "R$ 120,00")
	assert.Contains(t, out, "R$ 85,00")
	assert.Contains(t, out, "R$ 205,00")
}

func TestSaleCommand_NotFinalConsumer(t *testing.T) {
	out, err := execute(t, "sale", "--amount", "1000", "--destination", "BA", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Rows []map[string]json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.JSONEq(t, "0", string(decoded.Rows[0]["destination_difal"]))
	assert.JSONEq(t, "120", string(decoded.Rows[0]["total_icms"]))
}

func TestSaleCommand_RequiresDestination(t *testing.T) {
	_, err := execute(t, "sale", "--amount", "1000")
	assert.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	path := writeSimulations(t)

	out, err := execute(t, "run", path, "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "compra-sp", records[1][0])
	assert.Equal(t, "venda-ba", records[2][0])
}

func TestRunCommand_XLSXToFile(t *testing.T) {
	path := writeSimulations(t)
	target := filepath.Join(t.TempDir(), "report.xlsx")

	out, err := execute(t, "run", path, "--format", "xlsx", "--output", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunCommand_RatesOverride(t *testing.T) {
	path := writeSimulations(t)

	asset := rates.Default().Asset()
	for i := range asset.States {
		if asset.States[i].Code == domain.SP {
			asset.States[i].Interstate = decimal.NewFromInt(12)
		}
	}
	data, err := yaml.Marshal(asset)
	require.NoError(t, err)
	ratesFile := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(ratesFile, data, 0o644))

	out, err := execute(t, "run", path, "--rates", ratesFile, "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Rows []map[string]json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Rows, 2)
	assert.JSONEq(t, "8", string(decoded.Rows[0]["difal"]))

	_, err = execute(t, "run", path, "--rates", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", writeSimulations(t))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 simulations)")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("simulations:\n  - direction: rent\n"), 0o644))
	_, err = execute(t, "validate", bad)
	assert.Error(t, err)
}

func TestRatesCommand(t *testing.T) {
	out, err := execute(t, "rates")
	require.NoError(t, err)
	assert.Contains(t, out, "ICMS RATE TABLES")
	assert.Contains(t, out, "Piauí")
	assert.Contains(t, out, "22,5%")

	out, err = execute(t, "rates", "--format", "yaml")
	require.NoError(t, err)
	_, err = rates.Parse([]byte(out))
	assert.NoError(t, err, "yaml output must load as a rate file")

	_, err = execute(t, "rates", "--format", "xml")
	assert.Error(t, err)
}

func TestRatesCommand_CustomFile(t *testing.T) {
	out, err := execute(t, "rates", "--format", "yaml")
	require.NoError(t, err)
	edited := strings.Replace(out, "last_updated: \"2025-04-01\"", "last_updated: \"2099-01-01\"", 1)
	edited = strings.Replace(edited, "last_updated: 2025-04-01", "last_updated: 2099-01-01", 1)

	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	out, err = execute(t, "rates", "--rates", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Last updated: 2099-01-01")
}

func TestCompareCommand(t *testing.T) {
	args := []string{"compare", "--local", "100", "--remote", "100", "--freight-local", "10", "--freight-remote", "10",
		"--origin", "SP", "--states", "MG,bahia"}

	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "DIFAL ORIGIN COMPARISON")
	assert.Contains(t, out, "BA Bahia")

	out, err = execute(t, append(args, "--format", "csv")...)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)

	_, err = execute(t, "compare", "--local", "1", "--remote", "1", "--origin", "SP", "--states", "ZZ")
	assert.Error(t, err)

	_, err = execute(t, "compare", "--local", "1", "--remote", "1", "--imported")
	assert.Error(t, err)
}

func TestBreakEvenCommand(t *testing.T) {
	out, err := execute(t, "break-even", "--local", "113", "--remote", "90", "--origin", "SP")
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN REMOTE PRICE")
	assert.Contains(t, out, "R$ 100,00")
	assert.Contains(t, out, "buying remotely pays off")
}

func TestBreakEvenCommand_AllOrigins(t *testing.T) {
	out, err := execute(t, "break-even", "--local", "108", "--all-origins", "--states", "SP,BA", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Results []struct {
			Input struct {
				OriginState string `json:"origin_state"`
			} `json:"input"`
			MaxRemoteAmount string `json:"max_remote_amount"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "BA", decoded.Results[0].Input.OriginState)
	assert.Equal(t, "100", decoded.Results[0].MaxRemoteAmount)
}

func TestWhatIfCommand(t *testing.T) {
	args := []string{
		"what-if", "--local", "100", "--remote", "100", "--freight-local", "10", "--freight-remote", "10", "--origin", "SP",
		"--transform", "adjust_price:supplier=remote,percent=-10", "--format", "json",
	}
	out, err := execute(t, args...)
	require.NoError(t, err)

	var decoded struct {
		Rows []map[string]json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Rows, 2)
	assert.JSONEq(t, `"base"`, string(decoded.Rows[0]["name"]))
	assert.JSONEq(t, "13", string(decoded.Rows[0]["difal"]))
	assert.JSONEq(t, `"what-if: Adjust remote price by -10%"`, string(decoded.Rows[1]["name"]))
	assert.JSONEq(t, "90", string(decoded.Rows[1]["amount_remote"]))
	assert.JSONEq(t, "11.7", string(decoded.Rows[1]["difal"]))
}

func TestWhatIfCommand_Errors(t *testing.T) {
	base := []string{"what-if", "--local", "100", "--remote", "100", "--origin", "SP"}

	_, err := execute(t, base...)
	assert.ErrorContains(t, err, "--transform")

	_, err = execute(t, append(base, "--transform", "teleport:state=BA")...)
	assert.ErrorContains(t, err, "unknown transform")

	_, err = execute(t, append(base, "--transform", "adjust_price:supplier=remote,percent=-150")...)
	assert.ErrorContains(t, err, "percent must be greater than -100")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "difal dev")
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		l, err := newLogger(level)
		require.NoError(t, err, level)
		assert.NotNil(t, l)
	}

	_, err := newLogger("verbose")
	assert.Error(t, err)
}
