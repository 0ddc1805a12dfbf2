package request

import (
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds one unit of a product by id
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

// ScanRequest carries the barcode read by the scanner
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required,max=100"`
}

// LookupRequest matches a product code or part of its name
type LookupRequest struct {
	Term string `json:"term" binding:"required,max=255"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// DiscountRequest is a percentage; values outside 0-100 are clamped
type DiscountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

// SetCustomerRequest attaches a customer; a null id goes back to the walk-in customer
type SetCustomerRequest struct {
	CustomerID *int64 `json:"customer_id" binding:"omitempty,gt=0"`
}

type DeliveryRequest struct {
	Address string `json:"address" binding:"required,max=255"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	ZipCode string `json:"zip_code" binding:"max=20"`
	Phone   string `json:"phone" binding:"max=50"`
	Notes   string `json:"notes" binding:"max=500"`
}

func (r DeliveryRequest) ToEntity() *entity.DeliveryInfo {
	return &entity.DeliveryInfo{
		Address: r.Address,
		City:    r.City,
		State:   r.State,
		ZipCode: r.ZipCode,
		Phone:   r.Phone,
		Notes:   r.Notes,
	}
}

type TenderRequest struct {
	Type   enum.TenderType `json:"type" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
	Months *int            `json:"months"`
}

func (r TenderRequest) ToEntity() entity.Tender {
	return entity.Tender{Type: r.Type, Amount: r.Amount, Months: r.Months}
}

// SaleFilterRequest represents sales journal filter parameters
type SaleFilterRequest struct {
	InvoiceNumber string `form:"invoice_number"`
	Mine          bool   `form:"mine"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// InvoiceRangeRequest bounds the invoice history. Dates are YYYY-MM-DD or RFC 3339.
type InvoiceRangeRequest struct {
	Start string `form:"start"`
	End   string `form:"end"`
}
