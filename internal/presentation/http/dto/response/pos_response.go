package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/application/service"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// LineView is a cart line as shown to the cashier.
type LineView struct {
	ProductID         int64           `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          int             `json:"quantity"`
	ConfirmedQuantity int             `json:"confirmed_quantity"`
	Pending           bool            `json:"pending"`
	ManageStock       bool            `json:"manage_stock"`
	Discount          decimal.Decimal `json:"discount"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Total             decimal.Decimal `json:"total"`
}

type TenderView struct {
	Index  int             `json:"index"`
	Type   enum.TenderType `json:"type"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Months *int            `json:"months,omitempty"`
}

type CustomerView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}

func NewCustomerView(c *entity.Customer) CustomerView {
	return CustomerView{ID: c.ID, Name: c.InvoiceName(""), TaxID: c.TaxID()}
}

// SessionView is an invoice session with its derived payment figures.
type SessionView struct {
	ID              uuid.UUID            `json:"id"`
	ScopeID         uuid.UUID            `json:"scope_id"`
	Index           int                  `json:"index"`
	InvoiceNumber   string               `json:"invoice_number"`
	Status          enum.SessionStatus   `json:"status"`
	Busy            bool                 `json:"busy"`
	Customer        *CustomerView        `json:"customer"`
	CustomerName    string               `json:"customer_name"`
	Lines           []LineView           `json:"lines"`
	GeneralDiscount decimal.Decimal      `json:"general_discount"`
	Totals          entity.Totals        `json:"totals"`
	Tenders         []TenderView         `json:"tenders"`
	TotalPaid       decimal.Decimal      `json:"total_paid"`
	Difference      decimal.Decimal      `json:"difference"`
	TotalFinanced   decimal.Decimal      `json:"total_financed"`
	CanCheckout     bool                 `json:"can_checkout"`
	Delivery        *entity.DeliveryInfo `json:"delivery"`
	CreatedAt       time.Time            `json:"created_at"`
}

func NewSessionView(s *entity.InvoiceSession) *SessionView {
	if s == nil {
		return nil
	}
	v := &SessionView{
		ID:              s.ID,
		ScopeID:         s.ScopeID,
		Index:           s.Index,
		InvoiceNumber:   s.InvoiceNumber,
		Status:          s.Status,
		Busy:            s.Busy(),
		CustomerName:    s.Customer.InvoiceName(entity.WalkInCustomerName),
		Lines:           make([]LineView, 0, len(s.Lines)),
		GeneralDiscount: s.GeneralDiscount,
		Totals:          s.Totals,
		Tenders:         make([]TenderView, 0, len(s.Tenders)),
		TotalPaid:       s.TotalPaid(),
		Difference:      s.Difference(),
		TotalFinanced:   s.TotalFinanced(),
		CanCheckout:     s.CanCheckout() && !s.Busy(),
		Delivery:        s.Delivery,
		CreatedAt:       s.CreatedAt,
	}
	if s.Customer != nil {
		cv := NewCustomerView(s.Customer)
		v.Customer = &cv
	}
	for _, l := range s.Lines {
		v.Lines = append(v.Lines, LineView{
			ProductID:         l.ProductID(),
			Code:              l.Product.Code.String(),
			Name:              l.Product.Name,
			UnitPrice:         l.Product.Price,
			Quantity:          l.Quantity.Desired,
			ConfirmedQuantity: l.Quantity.Confirmed,
			Pending:           l.Quantity.Pending(),
			ManageStock:       l.Product.ManageStock,
			Discount:          l.Discount,
			DiscountValue:     l.DiscountValue,
			Subtotal:          l.Subtotal,
			Total:             l.Total,
		})
	}
	for i, t := range s.Tenders {
		v.Tenders = append(v.Tenders, TenderView{
			Index:  i,
			Type:   t.Type,
			Label:  t.Type.Label(),
			Amount: t.Amount,
			Months: t.Months,
		})
	}
	return v
}

type SessionListView struct {
	ActiveID uuid.UUID      `json:"active_id"`
	Sessions []*SessionView `json:"sessions"`
}

func NewSessionListView(l *service.SessionList) *SessionListView {
	v := &SessionListView{ActiveID: l.ActiveID, Sessions: make([]*SessionView, 0, len(l.Sessions))}
	for _, s := range l.Sessions {
		v.Sessions = append(v.Sessions, NewSessionView(s))
	}
	return v
}

// CheckoutView is the answer to a checkout request.
type CheckoutView struct {
	Outcome       enum.CheckoutOutcome `json:"outcome"`
	InvoiceNumber string               `json:"invoice_number,omitempty"`
	SaleID        *uuid.UUID           `json:"sale_id,omitempty"`
	Sale          *SessionView         `json:"sale"`
	Active        *SessionView         `json:"active"`
	Receipt       *entity.Receipt      `json:"receipt,omitempty"`
}

func NewCheckoutView(r *service.CheckoutResult) *CheckoutView {
	return &CheckoutView{
		Outcome:       r.Outcome,
		InvoiceNumber: r.InvoiceNumber,
		SaleID:        r.SaleID,
		Sale:          NewSessionView(r.Sale),
		Active:        NewSessionView(r.Active),
		Receipt:       r.Receipt,
	}
}
