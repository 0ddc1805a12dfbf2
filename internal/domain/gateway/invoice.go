package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sangkips/pos-register/internal/domain/entity"
)

// InvoicePayload is the body of pos/CreateInvoice. Items, payments and delivery travel
// as JSON-encoded strings.
type InvoicePayload struct {
	CompaniaID      int64       `json:"companiaId"`
	UserID          int64       `json:"userId"`
	ClientID        *int64      `json:"clientId"`
	ClientName      string      `json:"clientName"`
	ClientNit       string      `json:"clientNit"`
	Subtotal        json.Number `json:"subtotal"`
	GrossSubtotal   json.Number `json:"grossSubtotal"`
	GeneralDiscount json.Number `json:"generalDiscount"`
	DetailDiscount  json.Number `json:"detailDiscount"`
	TotalVat        json.Number `json:"totalVat"`
	TotalInvoice    json.Number `json:"totalInvoice"`
	Items           string      `json:"items"`
	Payments        string      `json:"payments"`
	Delivery        *string     `json:"delivery"`
}

type InvoiceItemPayload struct {
	ID            int64       `json:"id"`
	WarehouseID   int64       `json:"warehouseId"`
	ManageStock   bool        `json:"manageStock"`
	Quantity      int         `json:"quantity"`
	Price         json.Number `json:"price"`
	Discount      json.Number `json:"discount"`
	DiscountValue json.Number `json:"discountValue"`
	Subtotal      json.Number `json:"subtotal"`
	Total         json.Number `json:"total"`
}

type InvoicePaymentPayload struct {
	Type   string      `json:"type"`
	Amount json.Number `json:"amount"`
	Months *int        `json:"months"`
}

type InvoiceDeliveryPayload struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// Validate checks the payload shape before it is sent.
func (p *InvoicePayload) Validate() error {
	switch {
	case p.CompaniaID <= 0:
		return errors.New("invoice payload: missing company")
	case p.UserID <= 0:
		return errors.New("invoice payload: missing user")
	case p.ClientName == "":
		return errors.New("invoice payload: missing client name")
	case p.Items == "" || p.Items == "[]":
		return errors.New("invoice payload: no items")
	case p.Payments == "" || p.Payments == "[]":
		return errors.New("invoice payload: no payments")
	}
	return nil
}

// InvoiceResult is the backend's answer to CreateInvoice. Code 0 means committed.
type InvoiceResult struct {
	Code          int
	Message       string
	InvoiceNumber string
}

func (r *InvoiceResult) Committed() bool {
	return r.Code == 0
}

// InvoiceRecord is an invoice as listed by the backend's history endpoints.
type InvoiceRecord struct {
	ID              int64             `json:"id"`
	InvoiceNumber   entity.FlexString `json:"invoice_Number"`
	ClientName      string            `json:"client_Name"`
	ClientNit       string            `json:"client_Nit"`
	Subtotal        json.Number       `json:"subtotal"`
	GrossSubtotal   json.Number       `json:"subtotal_Bruto"`
	GeneralDiscount json.Number       `json:"descuento_General"`
	TotalVat        json.Number       `json:"total_Iva"`
	InvoiceTotal    json.Number       `json:"invoice_Total"`
	InvoiceStatus   string            `json:"invoice_Status"`
	CreatedAt       string            `json:"created_At"`
	Items           json.RawMessage   `json:"items,omitempty"`
	Customer        json.RawMessage   `json:"customer,omitempty"`
	Payments        json.RawMessage   `json:"payments,omitempty"`
	Delivery        json.RawMessage   `json:"delivery,omitempty"`
}

// InvoiceGateway submits invoices and reads the backend's invoice history.
type InvoiceGateway interface {
	CreateInvoice(ctx context.Context, payload *InvoicePayload) (*InvoiceResult, error)
	ListInvoices(ctx context.Context, start, end time.Time, companyID int64) ([]InvoiceRecord, error)
	GetInvoice(ctx context.Context, id, companyID int64) (*InvoiceRecord, error)
	CancelInvoice(ctx context.Context, id, companyID int64) (*InvoiceResult, error)
}
