package enum

import (
	"encoding/json"
	"fmt"
)

// TenderType identifies how a portion of the invoice total is paid
type TenderType string

const (
	TenderCash     TenderType = "cash"
	TenderCard     TenderType = "card"
	TenderTransfer TenderType = "transfer"
	TenderFinanced TenderType = "financed"
	TenderOther    TenderType = "other"
)

var tenderLabels = map[TenderType]string{
	TenderCash:     "Efectivo",
	TenderCard:     "Tarjeta",
	TenderTransfer: "Transferencia",
	TenderFinanced: "Financiado",
	TenderOther:    "Otro",
}

// TenderTypes lists every tender in display order.
func TenderTypes() []TenderType {
	return []TenderType{TenderCash, TenderCard, TenderTransfer, TenderFinanced, TenderOther}
}

func (t TenderType) IsValid() bool {
	_, ok := tenderLabels[t]
	return ok
}

// Label is the name printed on receipts and shown to the cashier.
func (t TenderType) Label() string {
	if label, ok := tenderLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t TenderType) String() string {
	return string(t)
}

func (t *TenderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed := TenderType(str)
	if !parsed.IsValid() {
		return fmt.Errorf("unknown tender type %q", str)
	}
	*t = parsed
	return nil
}
