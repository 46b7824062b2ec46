package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/difal/internal/output"
)

// FormatRemotePrice renders a break-even result for the console
func FormatRemotePrice(r *RemotePriceResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN REMOTE PRICE\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	origin := string(r.Input.OriginState)
	if r.Input.Imported {
		origin = "imported"
	}
	sb.WriteString(fmt.Sprintf("Origin:               %s\n", origin))
	sb.WriteString(fmt.Sprintf("Local total:          %s\n", output.FormatCurrency(r.LocalTotal)))
	sb.WriteString(fmt.Sprintf("Remote freight:       %s\n", output.FormatCurrency(r.Input.FreightRemote)))
	sb.WriteString(fmt.Sprintf("Differential rate:    %s\n", output.FormatPercentage(r.DifferentialRate)))

	if !r.Feasible {
		sb.WriteString("\nRemote freight alone exceeds the local total; no remote price breaks even.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Max remote price:     %s\n", output.FormatCurrency(r.MaxRemoteAmount)))
	sb.WriteString(fmt.Sprintf("Quoted remote price:  %s\n", output.FormatCurrency(r.Input.AmountRemote)))

	switch {
	case r.Headroom.IsNegative():
		sb.WriteString(fmt.Sprintf("\nThe quote is %s above break-even; buy locally.\n", output.FormatCurrency(r.Headroom.Neg())))
	default:
		sb.WriteString(fmt.Sprintf("\nThe quote is %s below break-even; buying remotely pays off.\n", output.FormatCurrency(r.Headroom)))
	}
	return sb.String()
}
