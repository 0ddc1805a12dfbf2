package entity

import "github.com/shopspring/decimal"

// CartLine is one product on an invoice session. The money fields are written by the totals engine.
type CartLine struct {
	Product       Product         `json:"product"`
	Quantity      Quantity        `json:"quantity"`
	Discount      decimal.Decimal `json:"discount"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}

func NewCartLine(p Product) *CartLine {
	return &CartLine{
		Product:  p,
		Discount: p.PromotionalDiscount(),
	}
}

func (l *CartLine) SetDiscount(pct decimal.Decimal) {
	l.Discount = ClampPercent(pct)
}

func (l *CartLine) ProductID() int64 {
	return l.Product.ID
}
