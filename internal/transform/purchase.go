package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/difal/internal/domain"
)

// Supplier selects which side of a purchase a transform touches
type Supplier string

const (
	SupplierLocal  Supplier = "local"
	SupplierRemote Supplier = "remote"
)

func parseSupplier(raw string) (Supplier, error) {
	switch Supplier(raw) {
	case SupplierLocal, SupplierRemote:
		return Supplier(raw), nil
	default:
		return "", fmt.Errorf("supplier must be local or remote, got %q", raw)
	}
}

func (s Supplier) amount(in *domain.PurchaseInput) *decimal.Decimal {
	if s == SupplierLocal {
		return &in.AmountLocal
	}
	return &in.AmountRemote
}

func (s Supplier) freight(in *domain.PurchaseInput) *decimal.Decimal {
	if s == SupplierLocal {
		return &in.FreightLocal
	}
	return &in.FreightRemote
}

// SetOrigin moves the remote supplier to another state.
type SetOrigin struct {
	State domain.StateCode
}

func (so *SetOrigin) Name() string {
	return "set_origin"
}

func (so *SetOrigin) Description() string {
	return fmt.Sprintf("Buy remotely from %s", so.State)
}

func (so *SetOrigin) Validate(base domain.PurchaseInput) error {
	if !so.State.IsKnown() {
		return NewTransformError(so.Name(), "validate", "unknown state", &domain.UnknownStateError{State: so.State})
	}
	return nil
}

func (so *SetOrigin) Apply(base domain.PurchaseInput) (domain.PurchaseInput, error) {
	base.OriginState = so.State
	return base, nil
}

// SetImported switches the goods between imported and national.
type SetImported struct {
	Imported bool
}

func (si *SetImported) Name() string {
	return "set_imported"
}

func (si *SetImported) Description() string {
	if si.Imported {
		return "Treat goods as imported"
	}
	return "Treat goods as national"
}

func (si *SetImported) Validate(base domain.PurchaseInput) error {
	if !si.Imported && !base.OriginState.IsKnown() {
		return NewTransformError(si.Name(), "validate", "national goods need a known origin state; apply set_origin first", nil)
	}
	return nil
}

func (si *SetImported) Apply(base domain.PurchaseInput) (domain.PurchaseInput, error) {
	base.Imported = si.Imported
	return base, nil
}

// AdjustPrice scales one supplier's price by a percentage, e.g. -5 for a
// negotiated 5% discount.
type AdjustPrice struct {
	Supplier Supplier
	Percent  decimal.Decimal
}

func (ap *AdjustPrice) Name() string {
	return "adjust_price"
}

func (ap *AdjustPrice) Description() string {
	return fmt.Sprintf("Adjust %s price by %s%%", ap.Supplier, ap.Percent.String())
}

func (ap *AdjustPrice) Validate(base domain.PurchaseInput) error {
	if _, err := parseSupplier(string(ap.Supplier)); err != nil {
		return NewTransformError(ap.Name(), "validate", err.Error(), nil)
	}
	if ap.Percent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(ap.Name(), "validate", fmt.Sprintf("percent must be greater than -100, got %s", ap.Percent), nil)
	}
	return nil
}

func (ap *AdjustPrice) Apply(base domain.PurchaseInput) (domain.PurchaseInput, error) {
	amount := ap.Supplier.amount(&base)
	factor := decimal.NewFromInt(1).Add(ap.Percent.Div(decimal.NewFromInt(100)))
	*amount = domain.RoundCurrency(amount.Mul(factor))
	return base, nil
}

// SetPrice replaces one supplier's price.
type SetPrice struct {
	Supplier Supplier
	Amount   decimal.Decimal
}

func (sp *SetPrice) Name() string {
	return "set_price"
}

func (sp *SetPrice) Description() string {
	return fmt.Sprintf("Set %s price to %s", sp.Supplier, sp.Amount.StringFixed(2))
}

func (sp *SetPrice) Validate(base domain.PurchaseInput) error {
	return validateAmount(sp.Name(), sp.Supplier, sp.Amount)
}

func (sp *SetPrice) Apply(base domain.PurchaseInput) (domain.PurchaseInput, error) {
	*sp.Supplier.amount(&base) = sp.Amount
	return base, nil
}

// SetFreight replaces one supplier's freight.
type SetFreight struct {
	Supplier Supplier
	Amount   decimal.Decimal
}

func (sf *SetFreight) Name() string {
	return "set_freight"
}

func (sf *SetFreight) Description() string {
	return fmt.Sprintf("Set %s freight to %s", sf.Supplier, sf.Amount.StringFixed(2))
}

func (sf *SetFreight) Validate(base domain.PurchaseInput) error {
	return validateAmount(sf.Name(), sf.Supplier, sf.Amount)
}

func (sf *SetFreight) Apply(base domain.PurchaseInput) (domain.PurchaseInput, error) {
	*sf.Supplier.freight(&base) = sf.Amount
	return base, nil
}

func validateAmount(name string, supplier Supplier, amount decimal.Decimal) error {
	if _, err := parseSupplier(string(supplier)); err != nil {
		return NewTransformError(name, "validate", err.Error(), nil)
	}
	if amount.IsNegative() {
		return NewTransformError(name, "validate", fmt.Sprintf("amount must be non-negative, got %s", amount), nil)
	}
	return nil
}
