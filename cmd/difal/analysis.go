package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/difal/internal/breakeven"
	"github.com/rgehrsitz/difal/internal/compare"
	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/output"
	"github.com/rgehrsitz/difal/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Price one purchase from every origin state",
	Example: "  difal compare --local 100 --remote 100 --freight-local 10 --freight-remote 10 --origin SP\n" +
		"  difal compare --local 100 --remote 100 --origin SP --states MG,BA,GO --format csv",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := purchaseFromFlags(cmd)
		if err != nil {
			return err
		}
		states, err := parseStateList(cmd)
		if err != nil {
			return err
		}

		provider, err := loadProvider()
		if err != nil {
			return err
		}
		engine := compare.NewCompareEngine(newEngine(provider))

		compSet, err := engine.CompareOrigins(cmd.Context(), *in, compare.CompareOptions{States: states})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		var result string
		switch outputFormat {
		case "table":
			result = (&compare.TableFormatter{}).Format(compSet)
		case "csv":
			result, err = (&compare.CSVFormatter{}).Format(compSet)
		case "json":
			result, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		default:
			return fmt.Errorf("unsupported format %q (available: table, csv, json)", outputFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to format comparison: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), result)
		return nil
	},
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even",
	Short: "Find the highest remote price that still matches buying locally",
	Example: "  difal break-even --local 113 --freight-remote 10 --origin SP\n" +
		"  difal break-even --local 113 --remote 95 --all-origins",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		allOrigins, _ := cmd.Flags().GetBool("all-origins")
		if allOrigins && !cmd.Flags().Changed("origin") {
			// the origin is replaced per state; give validation a placeholder
			_ = cmd.Flags().Set("origin", string(domain.SP))
		}

		in, err := purchaseFromFlags(cmd)
		if err != nil {
			return err
		}

		provider, err := loadProvider()
		if err != nil {
			return err
		}
		solver := breakeven.NewSolver(newEngine(provider))

		outputFormat, _ := cmd.Flags().GetString("format")
		if outputFormat != "console" && outputFormat != "json" {
			return fmt.Errorf("unsupported format %q (available: console, json)", outputFormat)
		}

		if allOrigins {
			states, err := parseStateList(cmd)
			if err != nil {
				return err
			}
			multi, err := solver.RemotePriceByOrigin(cmd.Context(), *in, states)
			if err != nil {
				return err
			}
			if outputFormat == "json" {
				return writeJSON(cmd, multi)
			}
			writeMultiOrigin(cmd, multi)
			return nil
		}

		result, err := solver.RemotePrice(*in)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return writeJSON(cmd, result)
		}
		fmt.Fprint(cmd.OutOrStdout(), breakeven.FormatRemotePrice(result))
		return nil
	},
}

var whatIfCmd = &cobra.Command{
	Use:   "what-if",
	Short: "Re-run a purchase after applying transforms and report both",
	Example: "  difal what-if --local 113 --remote 100 --freight-remote 10 --origin SP \\\n" +
		"      --transform adjust_price:supplier=remote,percent=-5 --transform set_origin:state=MG",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := purchaseFromFlags(cmd)
		if err != nil {
			return err
		}

		specs, _ := cmd.Flags().GetStringArray("transform")
		if len(specs) == 0 {
			return fmt.Errorf("at least one --transform is required (available: %s)",
				strings.Join(transform.NewTransformRegistry().List(), ", "))
		}
		transforms, err := transform.NewTransformRegistry().ParseAll(specs)
		if err != nil {
			return err
		}
		modified, err := transform.ApplyTransforms(*in, transforms)
		if err != nil {
			return err
		}
		logger.Debugw("applied transforms", "count", len(transforms), "origin", modified.OriginState)

		return runSimulations(cmd, []domain.Simulation{
			{Name: "base", Direction: domain.DirectionPurchase, Purchase: in},
			{Name: "what-if: " + transform.Describe(transforms), Direction: domain.DirectionPurchase, Purchase: &modified},
		}, nil)
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the interstate and internal ICMS rate tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := loadProvider()
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch outputFormat {
		case "table":
		case "yaml":
			data, err := yaml.Marshal(provider.Asset())
			if err != nil {
				return fmt.Errorf("failed to encode rates: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		case "json":
			return writeJSON(cmd, provider.Asset())
		default:
			return fmt.Errorf("unsupported format %q (available: table, yaml, json)", outputFormat)
		}

		out := cmd.OutOrStdout()
		meta := provider.Metadata()
		fmt.Fprintln(out, "ICMS RATE TABLES")
		fmt.Fprintln(out, strings.Repeat("=", 56))
		if meta.Description != "" {
			fmt.Fprintln(out, meta.Description)
		}
		fmt.Fprintf(out, "Last updated: %s\n", meta.LastUpdated)
		fmt.Fprintf(out, "Imported goods interstate rate: %s\n", output.FormatPercentage(provider.ImportedRate()))
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-4s %-24s %12s %12s\n", "UF", "State", "Interstate", "Internal")
		fmt.Fprintln(out, strings.Repeat("-", 56))
		for _, code := range domain.AllStates() {
			inter, _ := provider.InterstateRate(code)
			internal, _ := provider.InternalRate(code)
			name := code.Name()
			name += strings.Repeat(" ", max(0, 24-len([]rune(name))))
			fmt.Fprintf(out, "%-4s %s %12s %12s\n", code, name,
				output.FormatPercentage(inter), output.FormatPercentage(internal))
		}
		return nil
	},
}

func parseStateList(cmd *cobra.Command) ([]domain.StateCode, error) {
	raw, _ := cmd.Flags().GetStringSlice("states")
	states := make([]domain.StateCode, 0, len(raw))
	for _, s := range raw {
		code, err := domain.ParseStateCode(s)
		if err != nil {
			return nil, fmt.Errorf("--states: %w", err)
		}
		states = append(states, code)
	}
	return states, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeMultiOrigin(cmd *cobra.Command, multi *breakeven.MultiOriginResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "BREAK-EVEN REMOTE PRICE BY ORIGIN")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "%-6s %10s %18s %18s\n", "Origin", "DIFAL %", "Max remote price", "Headroom")
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, r := range multi.Results {
		fmt.Fprintf(out, "%-6s %10s %18s %18s\n",
			r.Input.OriginState,
			output.FormatPercentage(r.DifferentialRate),
			output.FormatCurrency(r.MaxRemoteAmount),
			output.FormatCurrency(r.Headroom))
	}
	if len(multi.Recommendations) > 0 {
		fmt.Fprintln(out)
		for _, rec := range multi.Recommendations {
			fmt.Fprintf(out, "• %s\n", rec)
		}
	}
}

func init() {
	addPurchaseFlags(compareCmd)
	compareCmd.Flags().StringSlice("states", nil, "Comma-separated origins to compare (default: every state)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")

	addPurchaseFlags(breakEvenCmd)
	breakEvenCmd.Flags().Bool("all-origins", false, "Solve for every origin state (or --states)")
	breakEvenCmd.Flags().StringSlice("states", nil, "Comma-separated origins for --all-origins")
	breakEvenCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")

	addPurchaseFlags(whatIfCmd)
	addReportFlags(whatIfCmd)
	whatIfCmd.Flags().StringArray("transform", nil, "Transform to apply, as name:key=value,... (repeatable)")

	ratesCmd.Flags().StringP("format", "f", "table", "Output format (table, yaml, json)")
}
