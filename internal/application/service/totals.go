package service

import (
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalsEngine recomputes invoice money from scratch. It never patches totals incrementally.
type TotalsEngine struct {
	vatRate decimal.Decimal
}

// NewTotalsEngine takes the VAT rate as a percentage, e.g. 19 for 19%.
func NewTotalsEngine(vatRate decimal.Decimal) *TotalsEngine {
	return &TotalsEngine{vatRate: entity.ClampPercent(vatRate)}
}

func (e *TotalsEngine) VATRate() decimal.Decimal {
	return e.vatRate
}

// Recompute writes every line's money fields and the session totals. Lines are priced
// at their confirmed quantity.
func (e *TotalsEngine) Recompute(s *entity.InvoiceSession) entity.Totals {
	gross := decimal.Zero
	detail := decimal.Zero

	for _, l := range s.Lines {
		qty := decimal.NewFromInt(int64(l.Quantity.Confirmed))
		l.Subtotal = l.Product.Price.Mul(qty)
		l.DiscountValue = l.Subtotal.Mul(l.Discount).Div(hundred)
		l.Total = l.Subtotal.Sub(l.DiscountValue)

		gross = gross.Add(l.Subtotal)
		detail = detail.Add(l.DiscountValue)
	}

	afterDetail := gross.Sub(detail)
	general := afterDetail.Mul(s.GeneralDiscount).Div(hundred)
	net := afterDetail.Sub(general)
	vat := net.Mul(e.vatRate).Div(hundred)

	s.Totals = entity.Totals{
		GrossSubtotal:         gross,
		DetailDiscount:        detail,
		GeneralDiscountAmount: general,
		Subtotal:              net,
		TotalVAT:              vat,
		Total:                 net.Add(vat),
	}
	return s.Totals
}
