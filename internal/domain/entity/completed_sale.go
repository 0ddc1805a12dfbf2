package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompletedSale is the local journal entry written after the backend accepts an invoice.
type CompletedSale struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID             int64           `gorm:"not null;index" json:"company_id"`
	UserID                int64           `gorm:"not null;index" json:"user_id"`
	SessionID             uuid.UUID       `gorm:"type:uuid;not null" json:"session_id"`
	ScopeID               uuid.UUID       `gorm:"type:uuid;not null" json:"scope_id"`
	InvoiceNumber         string          `gorm:"size:100;not null;index" json:"invoice_number"`
	CustomerID            *int64          `json:"customer_id,omitempty"`
	CustomerName          string          `gorm:"size:255" json:"customer_name"`
	CustomerTaxID         string          `gorm:"size:100" json:"customer_tax_id,omitempty"`
	GrossSubtotal         decimal.Decimal `gorm:"type:numeric(18,4)" json:"gross_subtotal"`
	DetailDiscount        decimal.Decimal `gorm:"type:numeric(18,4)" json:"detail_discount"`
	GeneralDiscount       decimal.Decimal `gorm:"type:numeric(7,4)" json:"general_discount"`
	GeneralDiscountAmount decimal.Decimal `gorm:"type:numeric(18,4)" json:"general_discount_amount"`
	Subtotal              decimal.Decimal `gorm:"type:numeric(18,4)" json:"subtotal"`
	TotalVAT              decimal.Decimal `gorm:"type:numeric(18,4)" json:"total_vat"`
	Total                 decimal.Decimal `gorm:"type:numeric(18,4)" json:"total"`
	LinesJSON             string          `gorm:"type:text;column:lines" json:"-"`
	TendersJSON           string          `gorm:"type:text;column:tenders" json:"-"`
	DeliveryJSON          *string         `gorm:"type:text;column:delivery" json:"-"`
	CreatedAt             time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new journal entry
func (s *CompletedSale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (CompletedSale) TableName() string {
	return "completed_sales"
}

// NewCompletedSale snapshots a committed session.
func NewCompletedSale(companyID, userID int64, s *InvoiceSession) (*CompletedSale, error) {
	lines, err := json.Marshal(s.Lines)
	if err != nil {
		return nil, err
	}
	tenders, err := json.Marshal(s.Tenders)
	if err != nil {
		return nil, err
	}
	sale := &CompletedSale{
		CompanyID:             companyID,
		UserID:                userID,
		SessionID:             s.ID,
		ScopeID:               s.ScopeID,
		InvoiceNumber:         s.InvoiceNumber,
		CustomerName:          s.Customer.InvoiceName(WalkInCustomerName),
		CustomerTaxID:         s.Customer.TaxID(),
		GrossSubtotal:         s.Totals.GrossSubtotal,
		DetailDiscount:        s.Totals.DetailDiscount,
		GeneralDiscount:       s.GeneralDiscount,
		GeneralDiscountAmount: s.Totals.GeneralDiscountAmount,
		Subtotal:              s.Totals.Subtotal,
		TotalVAT:              s.Totals.TotalVAT,
		Total:                 s.Totals.Total,
		LinesJSON:             string(lines),
		TendersJSON:           string(tenders),
	}
	if s.Customer != nil {
		id := s.Customer.ID
		sale.CustomerID = &id
	}
	if s.Delivery != nil {
		raw, err := json.Marshal(s.Delivery)
		if err != nil {
			return nil, err
		}
		d := string(raw)
		sale.DeliveryJSON = &d
	}
	return sale, nil
}

func (s *CompletedSale) Lines() ([]CartLine, error) {
	var lines []CartLine
	if s.LinesJSON == "" {
		return lines, nil
	}
	err := json.Unmarshal([]byte(s.LinesJSON), &lines)
	return lines, err
}

func (s *CompletedSale) Tenders() ([]Tender, error) {
	var tenders []Tender
	if s.TendersJSON == "" {
		return tenders, nil
	}
	err := json.Unmarshal([]byte(s.TendersJSON), &tenders)
	return tenders, err
}

func (s *CompletedSale) Delivery() (*DeliveryInfo, error) {
	if s.DeliveryJSON == nil || *s.DeliveryJSON == "" {
		return nil, nil
	}
	var d DeliveryInfo
	if err := json.Unmarshal([]byte(*s.DeliveryJSON), &d); err != nil {
		return nil, err
	}
	return &d, nil
}
