package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by the inventory service. It is read-only during a sale.
type Product struct {
	ID              int64           `json:"id"`
	Code            FlexString      `json:"code"`
	Reference       string          `json:"reference,omitempty"`
	Extension1      string          `json:"extension1,omitempty"`
	Extension2      string          `json:"extension2,omitempty"`
	Tag             string          `json:"tag,omitempty"`
	Barcode         string          `json:"barcode,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category,omitempty"`
	CategoryID      int64           `json:"categoryId,omitempty"`
	UnitMeasure     string          `json:"unitMeasure,omitempty"`
	UnitMeasureID   int64           `json:"unitMeasureId,omitempty"`
	Stock           decimal.Decimal `json:"stock"`
	ManageStock     bool            `json:"manageStock"`
	HasDiscount     bool            `json:"hasDiscount"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// PromotionalDiscount is the line discount a new cart line starts with.
func (p Product) PromotionalDiscount() decimal.Decimal {
	if !p.HasDiscount {
		return decimal.Zero
	}
	return ClampPercent(p.DiscountPercent)
}

// MatchesBarcode reports an exact match against the trimmed scanner input.
func (p Product) MatchesBarcode(barcode string) bool {
	barcode = strings.TrimSpace(barcode)
	return barcode != "" && p.Barcode == barcode
}

// MatchesCodeOrName is the quick lookup used by the code box: exact code or name substring.
func (p Product) MatchesCodeOrName(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	if strings.ToLower(p.Code.String()) == term {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term)
}

// MatchesSearch is the broad search across every descriptive field.
func (p Product) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	fields := []string{
		p.Name, p.Code.String(), p.Reference, p.Barcode,
		p.Category, p.Extension1, p.Extension2, p.Tag,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// ClampPercent bounds a percentage to the 0..100 range.
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

var hundred = decimal.NewFromInt(100)
