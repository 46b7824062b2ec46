package breakeven

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/difal/internal/domain"
)

func TestBreakEvenError(t *testing.T) {
	cause := &domain.UnknownStateError{State: "XX", Table: "interstate"}
	err := &BreakEvenError{
		Operation: "remote_price",
		Message:   "failed to evaluate purchase",
		Cause:     cause,
	}

	expected := `remote_price: failed to evaluate purchase: state "XX" not found in interstate rate table`
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, domain.ErrUnknownState) {
		t.Error("Expected errors.Is to reach ErrUnknownState")
	}

	bare := &BreakEvenError{Operation: "remote_price", Message: "calculation engine is required"}
	if bare.Error() != "remote_price: calculation engine is required" {
		t.Errorf("Unexpected message %q", bare.Error())
	}
	if bare.Unwrap() != nil {
		t.Error("Expected nil cause")
	}
}

func TestFormatRemotePrice(t *testing.T) {
	result := &RemotePriceResult{
		Input: domain.PurchaseInput{
			AmountRemote:  decimal.NewFromInt(90),
			FreightRemote: decimal.NewFromInt(10),
			OriginState:   domain.SP,
		},
		LocalTotal:       decimal.NewFromInt(123),
		DifferentialRate: decimal.NewFromInt(13),
		MaxRemoteAmount:  decimal.NewFromInt(100),
		Feasible:         true,
		Headroom:         decimal.NewFromInt(10),
	}

	out := FormatRemotePrice(result)
	for _, want := range []string{
		"BREAK-EVEN REMOTE PRICE",
		"Origin:               SP",
		"Differential rate:    13%",
		"Max remote price:     R$ 100,00",
		"R$ 10,00 below break-even",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}

	result.Headroom = decimal.NewFromInt(-5)
	result.Input.Imported = true
	out = FormatRemotePrice(result)
	if !strings.Contains(out, "Origin:               imported") {
		t.Errorf("Expected imported origin\n%s", out)
	}
	if !strings.Contains(out, "R$ 5,00 above break-even; buy locally") {
		t.Errorf("Expected negative headroom message\n%s", out)
	}

	result.Feasible = false
	out = FormatRemotePrice(result)
	if !strings.Contains(out, "no remote price breaks even") {
		t.Errorf("Expected infeasible message\n%s", out)
	}
	if strings.Contains(out, "Max remote price") {
		t.Error("Infeasible result should not print a max price")
	}
}
