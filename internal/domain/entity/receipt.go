package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
	Footer    string `json:"footer,omitempty"`
}

type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

type ReceiptTender struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Months *int            `json:"months,omitempty"`
}

// Receipt is a printable value composed from a committed sale. It is not persisted.
type Receipt struct {
	Header          ReceiptHeader   `json:"header"`
	InvoiceNo       string          `json:"invoice_no"`
	Date            string          `json:"date"`
	Customer        string          `json:"customer,omitempty"`
	CustomerTaxID   string          `json:"customer_tax_id,omitempty"`
	Items           []ReceiptItem   `json:"items"`
	GrossSubtotal   decimal.Decimal `json:"gross_subtotal"`
	DetailDiscount  decimal.Decimal `json:"detail_discount"`
	GeneralDiscount decimal.Decimal `json:"general_discount"`
	SubTotal        decimal.Decimal `json:"sub_total"`
	VAT             decimal.Decimal `json:"vat"`
	Total           decimal.Decimal `json:"total"`
	Tenders         []ReceiptTender `json:"tenders"`
	Change          decimal.Decimal `json:"change"`
	TotalFinanced   decimal.Decimal `json:"total_financed"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
}
