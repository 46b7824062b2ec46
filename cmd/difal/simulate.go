package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/difal/internal/config"
	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/rgehrsitz/difal/internal/output"
)

var purchaseCmd = &cobra.Command{
	Use:   "purchase",
	Short: "Compare buying locally with buying from another state",
	Example: "  difal purchase --local 100 --remote 100 --freight-local 10 --freight-remote 10 --origin SP\n" +
		"  difal purchase --local 120 --remote 100 --imported",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := purchaseFromFlags(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		return runSimulations(cmd, []domain.Simulation{{
			Name:      name,
			Direction: domain.DirectionPurchase,
			Purchase:  in,
		}}, nil)
	},
}

var saleCmd = &cobra.Command{
	Use:     "sale",
	Short:   "Split the ICMS of an interstate sale between origin and destination",
	Example: "  difal sale --amount 1000 --destination BA --final-consumer",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := saleFromFlags(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		return runSimulations(cmd, []domain.Simulation{{
			Name:      name,
			Direction: domain.DirectionSale,
			Sale:      in,
		}}, nil)
	},
}

var runCmd = &cobra.Command{
	Use:   "run [simulation-file]",
	Short: "Run every simulation in a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		file, provider, err := parser.LoadFromFileWithRates(args[0], settings.RatesFile)
		if err != nil {
			return err
		}
		logger.Infow("loaded simulations", "file", args[0], "count", len(file.Simulations))

		engine := newEngine(provider)
		return runSimulations(cmd, file.Simulations, engine.RunSimulations)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [simulation-file]",
	Short: "Validate a simulation file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		file, _, err := parser.LoadFromFileWithRates(args[0], settings.RatesFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Simulation file %s is valid (%d simulations)\n", args[0], len(file.Simulations))
		return nil
	},
}

// runSimulations calculates sims (with run, or a fresh engine when nil) and
// writes the report in the selected format
func runSimulations(cmd *cobra.Command, sims []domain.Simulation, run func([]domain.Simulation) []domain.Outcome) error {
	formatName, _ := cmd.Flags().GetString("format")
	if formatName == "" {
		formatName = settings.Format
	}
	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		return fmt.Errorf("unsupported format %q (available: %v)", formatName, output.FormatterNames())
	}
	outputPath, _ := cmd.Flags().GetString("output")
	if output.IsBinary(formatter) && outputPath == "" {
		return fmt.Errorf("format %s writes a binary file; use --output", formatName)
	}

	if run == nil {
		provider, err := loadProvider()
		if err != nil {
			return err
		}
		run = newEngine(provider).RunSimulations
	}

	report := output.NewReport(run(sims))
	logger.Debugw("report built", "id", report.ID, "rows", len(report.Rows), "failed", report.Failed())

	data, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	// A single simulation that failed is a failed command; batches report
	// per-row errors and still succeed
	if len(report.Rows) == 1 && report.Failed() == 1 {
		return fmt.Errorf("%s", report.Rows[0].Error)
	}
	return nil
}

func purchaseFromFlags(cmd *cobra.Command) (*domain.PurchaseInput, error) {
	in := &domain.PurchaseInput{}
	for _, f := range []struct {
		flag string
		dest *decimal.Decimal
	}{
		{"local", &in.AmountLocal},
		{"remote", &in.AmountRemote},
		{"freight-local", &in.FreightLocal},
		{"freight-remote", &in.FreightRemote},
	} {
		raw, _ := cmd.Flags().GetString(f.flag)
		amount, err := domain.ParseAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", f.flag, err)
		}
		*f.dest = amount
	}

	origin, _ := cmd.Flags().GetString("origin")
	in.OriginState = domain.StateCode(origin)
	in.Imported, _ = cmd.Flags().GetBool("imported")

	if err := config.NewInputParser().ValidatePurchase(in); err != nil {
		return nil, err
	}
	return in, nil
}

func saleFromFlags(cmd *cobra.Command) (*domain.SaleInput, error) {
	in := &domain.SaleInput{}
	for _, f := range []struct {
		flag string
		dest *decimal.Decimal
	}{
		{"amount", &in.Amount},
		{"freight", &in.Freight},
	} {
		raw, _ := cmd.Flags().GetString(f.flag)
		amount, err := domain.ParseAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", f.flag, err)
		}
		*f.dest = amount
	}

	dest, _ := cmd.Flags().GetString("destination")
	in.DestinationState = domain.StateCode(dest)
	in.Imported, _ = cmd.Flags().GetBool("imported")
	in.FinalConsumer, _ = cmd.Flags().GetBool("final-consumer")

	if err := config.NewInputParser().ValidateSale(in); err != nil {
		return nil, err
	}
	return in, nil
}

// addPurchaseFlags registers the purchase input flags shared by purchase,
// compare and break-even
func addPurchaseFlags(cmd *cobra.Command) {
	cmd.Flags().String("local", "0", "Product price from the local supplier")
	cmd.Flags().String("remote", "0", "Product price from the out-of-state supplier")
	cmd.Flags().String("freight-local", "0", "Freight from the local supplier")
	cmd.Flags().String("freight-remote", "0", "Freight from the out-of-state supplier")
	cmd.Flags().String("origin", "", "Origin state of the remote supplier (code or name)")
	cmd.Flags().Bool("imported", false, "Goods are imported (4% interstate rate)")
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format (console, json, csv, xlsx, html; env DIFAL_FORMAT)")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
}

func init() {
	addPurchaseFlags(purchaseCmd)
	addReportFlags(purchaseCmd)
	purchaseCmd.Flags().String("name", "purchase", "Simulation name shown in the report")

	saleCmd.Flags().String("amount", "0", "Product value")
	saleCmd.Flags().String("freight", "0", "Freight charged to the buyer")
	saleCmd.Flags().String("destination", "", "Destination state (code or name)")
	saleCmd.Flags().Bool("imported", false, "Goods are imported (4% interstate rate)")
	saleCmd.Flags().Bool("final-consumer", false, "Buyer is a non-taxpayer final consumer")
	saleCmd.Flags().String("name", "sale", "Simulation name shown in the report")
	addReportFlags(saleCmd)
	_ = saleCmd.MarkFlagRequired("destination")

	addReportFlags(runCmd)
}
