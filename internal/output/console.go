package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders an amount the way Brazilian invoices do: R$ 1.234,56
func FormatCurrency(amount decimal.Decimal) string {
	return brl.Sprintf("R$ %.2f", amount.Round(2).InexactFloat64())
}

// FormatPercentage renders a rate with a decimal comma: 20,5%
func FormatPercentage(rate decimal.Decimal) string {
	return strings.ReplaceAll(rate.String(), ".", ",") + "%"
}

// FormatValue renders a field for people rather than machines
func FormatValue(f domain.Field) string {
	switch f.Kind {
	case domain.FieldAmount:
		return FormatCurrency(f.Number)
	case domain.FieldRate:
		return FormatPercentage(f.Number)
	case domain.FieldFlag:
		if f.Flag {
			return "Sim"
		}
		return "Não"
	default:
		return f.Text
	}
}

// ConsoleFormatter writes a human-readable report
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("DIFAL SIMULATION REPORT\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	for i, row := range report.Rows {
		if i > 0 {
			sb.WriteString(strings.Repeat("-", 60) + "\n")
		}
		sb.WriteString(fmt.Sprintf("%s (%s)\n", row.Name, row.Direction))

		sb.WriteString("  Inputs:\n")
		writeFields(&sb, row.Inputs)

		if row.Error != "" {
			sb.WriteString(fmt.Sprintf("  Error: %s\n", row.Error))
			continue
		}
		sb.WriteString("  Result:\n")
		writeFields(&sb, row.Result)
	}

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%d simulation(s), %d failed\n", len(report.Rows), report.Failed()))

	return []byte(sb.String()), nil
}

func writeFields(sb *strings.Builder, rec domain.Record) {
	width := 0
	for _, f := range rec {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}
	for _, f := range rec {
		sb.WriteString(fmt.Sprintf("    %-*s  %s\n", width, f.Label+":", FormatValue(f)))
	}
}
