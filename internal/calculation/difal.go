package calculation

import (
	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/shopspring/decimal"
)

// DIFAL RULES:
//
// 1. Purchase: the buyer always pays the differential on goods brought in
//    from another state, so the amount is charged unconditionally.
//
// 2. Sale: the differential is owed to the destination state only when the
//    buyer is a non-taxpayer final consumer. Otherwise it is zero.
//
// 3. Imported goods use the fixed 4% interstate rate regardless of origin.
//
// 4. Amounts are computed at full precision and rounded to cents only in the
//    returned result.

// differentialOwed is the single gate deciding whether DIFAL applies
func differentialOwed(direction domain.Direction, finalConsumer bool) bool {
	switch direction {
	case domain.DirectionPurchase:
		return true
	case domain.DirectionSale:
		return finalConsumer
	default:
		return false
	}
}

// differential computes base * (internal - interstate) / 100, or zero when
// the direction's rule says nothing is owed
func differential(direction domain.Direction, finalConsumer bool, base, internal, interstate decimal.Decimal) decimal.Decimal {
	if !differentialOwed(direction, finalConsumer) {
		return decimal.Zero
	}
	return base.Mul(internal.Sub(interstate)).Div(hundred)
}

// CalculatePurchase compares buying locally against buying from another
// state and paying the differential on entry
func (ce *CalculationEngine) CalculatePurchase(in domain.PurchaseInput) (*domain.PurchaseResult, error) {
	originRate, err := ce.interstateRate(in.OriginState, in.Imported)
	if err != nil {
		return nil, err
	}
	destinationRate := ce.DestinationRate

	difal := differential(domain.DirectionPurchase, false, in.AmountRemote, destinationRate, originRate)
	localTotal := in.AmountLocal.Add(in.FreightLocal)
	remoteTotal := in.AmountRemote.Add(in.FreightRemote).Add(difal)

	verdict := domain.VerdictRemote
	if localTotal.LessThan(remoteTotal) {
		verdict = domain.VerdictLocal
	}

	ce.log().Debugf("purchase origin=%s imported=%t originRate=%s difal=%s local=%s remote=%s",
		in.OriginState, in.Imported, originRate, difal, localTotal, remoteTotal)

	return &domain.PurchaseResult{
		OriginRate:       originRate,
		DestinationRate:  destinationRate,
		DifferentialRate: destinationRate.Sub(originRate),
		DIFAL:            domain.RoundCurrency(difal),
		LocalTotal:       domain.RoundCurrency(localTotal),
		RemoteTotal:      domain.RoundCurrency(remoteTotal),
		Verdict:          verdict,
		Difference:       domain.RoundCurrency(localTotal.Sub(remoteTotal).Abs()),
	}, nil
}

// CalculateSale splits the ICMS of an interstate sale between the origin
// and destination states
func (ce *CalculationEngine) CalculateSale(in domain.SaleInput) (*domain.SaleResult, error) {
	base := in.Amount.Add(in.Freight)

	interstateRate, err := ce.interstateRate(in.DestinationState, in.Imported)
	if err != nil {
		return nil, err
	}
	internalRate, err := ce.internalRate(in.DestinationState)
	if err != nil {
		return nil, err
	}

	originICMS := base.Mul(interstateRate).Div(hundred)
	difal := differential(domain.DirectionSale, in.FinalConsumer, base, internalRate, interstateRate)
	total := originICMS.Add(difal)

	ce.log().Debugf("sale destination=%s imported=%t finalConsumer=%t interstate=%s internal=%s difal=%s",
		in.DestinationState, in.Imported, in.FinalConsumer, interstateRate, internalRate, difal)

	return &domain.SaleResult{
		Base:             domain.RoundCurrency(base),
		InterstateRate:   interstateRate,
		InternalRate:     internalRate,
		OriginICMS:       domain.RoundCurrency(originICMS),
		DestinationDIFAL: domain.RoundCurrency(difal),
		TotalICMS:        domain.RoundCurrency(total),
	}, nil
}
