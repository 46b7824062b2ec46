package domain

import "github.com/shopspring/decimal"

// Verdict is the human-readable outcome of a purchase comparison
type Verdict string

const (
	VerdictLocal  Verdict = "local is more advantageous"
	VerdictRemote Verdict = "remote is more advantageous"
)

// PurchaseResult holds the outcome of a purchase simulation.
// Rates are percentages; amounts are already rounded to cents.
type PurchaseResult struct {
	OriginRate       decimal.Decimal `json:"origin_rate"`
	DestinationRate  decimal.Decimal `json:"destination_rate"`
	DifferentialRate decimal.Decimal `json:"differential_rate"`
	DIFAL            decimal.Decimal `json:"difal"`
	LocalTotal       decimal.Decimal `json:"local_total"`
	RemoteTotal      decimal.Decimal `json:"remote_total"`
	Verdict          Verdict         `json:"verdict"`
	Difference       decimal.Decimal `json:"difference"`
}

// Fields returns the result in its canonical order
func (r *PurchaseResult) Fields() Record {
	return Record{
		RateField("origin_rate", "Origin rate (%)", r.OriginRate),
		RateField("destination_rate", "Destination rate (%)", r.DestinationRate),
		RateField("differential_rate", "Differential rate (%)", r.DifferentialRate),
		AmountField("difal", "DIFAL (R$)", r.DIFAL),
		AmountField("local_total", "Local total (R$)", r.LocalTotal),
		AmountField("remote_total", "Remote total (R$)", r.RemoteTotal),
		TextField("verdict", "Comparison", string(r.Verdict)),
		AmountField("difference", "Cost difference (R$)", r.Difference),
	}
}

// SaleResult holds the ICMS split of a sale simulation
type SaleResult struct {
	Base             decimal.Decimal `json:"base"`
	InterstateRate   decimal.Decimal `json:"interstate_rate"`
	InternalRate     decimal.Decimal `json:"internal_rate"`
	OriginICMS       decimal.Decimal `json:"origin_icms"`
	DestinationDIFAL decimal.Decimal `json:"destination_difal"`
	TotalICMS        decimal.Decimal `json:"total_icms"`
}

// Fields returns the result in its canonical order
func (r *SaleResult) Fields() Record {
	return Record{
		AmountField("base", "Calculation base (R$)", r.Base),
		RateField("interstate_rate", "Interstate rate (%)", r.InterstateRate),
		RateField("internal_rate", "Internal rate (%)", r.InternalRate),
		AmountField("origin_icms", "Origin ICMS (R$)", r.OriginICMS),
		AmountField("destination_difal", "Destination DIFAL (R$)", r.DestinationDIFAL),
		AmountField("total_icms", "Total ICMS (R$)", r.TotalICMS),
	}
}

// Outcome pairs a simulation with either its result record or its error
type Outcome struct {
	Simulation Simulation
	Purchase   *PurchaseResult
	Sale       *SaleResult
	Err        error
}

// Fields returns the result record of whichever variant ran
func (o Outcome) Fields() Record {
	switch {
	case o.Purchase != nil:
		return o.Purchase.Fields()
	case o.Sale != nil:
		return o.Sale.Fields()
	default:
		return Record{}
	}
}
