package entity

import (
	"fmt"

	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// FinancingTerms are the installment counts accepted for financed tenders.
var FinancingTerms = []int{3, 6, 9, 12, 18, 24}

// Tender is one payment method line of an invoice.
type Tender struct {
	Type   enum.TenderType `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Months *int            `json:"months,omitempty"`
}

func CashTender() Tender {
	return Tender{Type: enum.TenderCash, Amount: decimal.Zero}
}

// Validate checks the tender and drops months from anything that is not financed.
func (t *Tender) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTender, t.Type)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidTender)
	}
	if t.Type != enum.TenderFinanced {
		t.Months = nil
		return nil
	}
	if t.Months == nil {
		return fmt.Errorf("%w: financed payments need a term", ErrInvalidTender)
	}
	for _, m := range FinancingTerms {
		if *t.Months == m {
			return nil
		}
	}
	return fmt.Errorf("%w: %d months is not an offered term", ErrInvalidTender, *t.Months)
}
