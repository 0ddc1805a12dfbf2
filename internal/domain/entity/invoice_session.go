package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// PaymentTolerance is the largest payment difference accepted at checkout.
var PaymentTolerance = decimal.New(1, -2)

// Totals is the result of a full recompute over an invoice session.
type Totals struct {
	GrossSubtotal         decimal.Decimal `json:"gross_subtotal"`
	DetailDiscount        decimal.Decimal `json:"detail_discount"`
	GeneralDiscountAmount decimal.Decimal `json:"general_discount_amount"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	TotalVAT              decimal.Decimal `json:"total_vat"`
	Total                 decimal.Decimal `json:"total"`
}

// InvoiceSession is one open cart. A cashier can hold several at once.
type InvoiceSession struct {
	ID              uuid.UUID          `json:"id"`
	ScopeID         uuid.UUID          `json:"scope_id"`
	Index           int                `json:"index"`
	InvoiceNumber   string             `json:"invoice_number"`
	Customer        *Customer          `json:"customer,omitempty"`
	Lines           []*CartLine        `json:"lines"`
	Tenders         []Tender           `json:"tenders"`
	GeneralDiscount decimal.Decimal    `json:"general_discount"`
	Totals          Totals             `json:"totals"`
	Delivery        *DeliveryInfo      `json:"delivery,omitempty"`
	Status          enum.SessionStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`

	inFlight int
}

func NewInvoiceSession(index int, number string, now time.Time) *InvoiceSession {
	return &InvoiceSession{
		ID:            uuid.New(),
		ScopeID:       uuid.New(),
		Index:         index,
		InvoiceNumber: number,
		Lines:         []*CartLine{},
		Tenders:       []Tender{CashTender()},
		Status:        enum.SessionEditing,
		CreatedAt:     now,
	}
}

// Line returns the cart line for a product, or nil.
func (s *InvoiceSession) Line(productID int64) *CartLine {
	for _, l := range s.Lines {
		if l.Product.ID == productID {
			return l
		}
	}
	return nil
}

func (s *InvoiceSession) InsertLine(l *CartLine) {
	if s.Line(l.Product.ID) != nil {
		return
	}
	s.Lines = append(s.Lines, l)
}

func (s *InvoiceSession) RemoveLine(productID int64) {
	for i, l := range s.Lines {
		if l.Product.ID == productID {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			return
		}
	}
}

func (s *InvoiceSession) SetGeneralDiscount(pct decimal.Decimal) {
	s.GeneralDiscount = ClampPercent(pct)
}

// RotateScope replaces the reservation scope with a fresh id.
func (s *InvoiceSession) RotateScope() uuid.UUID {
	prev := s.ScopeID
	for s.ScopeID == prev {
		s.ScopeID = uuid.New()
	}
	return s.ScopeID
}

// Reset drops lines, discounts, delivery and tenders. The scope id is left alone.
func (s *InvoiceSession) Reset() {
	s.Lines = []*CartLine{}
	s.GeneralDiscount = decimal.Zero
	s.Tenders = []Tender{CashTender()}
	s.Delivery = nil
	s.Totals = Totals{}
}

// BeginReservation marks a reservation call in flight.
func (s *InvoiceSession) BeginReservation() {
	s.inFlight++
}

func (s *InvoiceSession) EndReservation() {
	if s.inFlight > 0 {
		s.inFlight--
	}
}

// Busy reports whether the session can not be checked out or cleared right now.
func (s *InvoiceSession) Busy() bool {
	return s.inFlight > 0 || s.Status != enum.SessionEditing
}

func (s *InvoiceSession) PendingReservations() int {
	return s.inFlight
}

// TotalPaid sums every tender amount.
func (s *InvoiceSession) TotalPaid() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range s.Tenders {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// Difference is paid minus owed. Positive means change is due.
func (s *InvoiceSession) Difference() decimal.Decimal {
	return s.TotalPaid().Sub(s.Totals.Total)
}

// TotalFinanced sums the financed tenders.
func (s *InvoiceSession) TotalFinanced() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range s.Tenders {
		if t.Type == enum.TenderFinanced {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// PaymentsBalanced applies the checkout tolerance to the payment difference.
func (s *InvoiceSession) PaymentsBalanced() bool {
	return s.Difference().Abs().LessThanOrEqual(PaymentTolerance)
}

func (s *InvoiceSession) CanCheckout() bool {
	return len(s.Lines) > 0 && s.PaymentsBalanced()
}

func (s *InvoiceSession) AddTender() {
	s.Tenders = append(s.Tenders, CashTender())
}

func (s *InvoiceSession) RemoveTender(i int) error {
	if i < 0 || i >= len(s.Tenders) {
		return ErrTenderNotFound
	}
	if len(s.Tenders) <= 1 {
		return ErrLastTender
	}
	s.Tenders = append(s.Tenders[:i], s.Tenders[i+1:]...)
	return nil
}

func (s *InvoiceSession) UpdateTender(i int, t Tender) error {
	if i < 0 || i >= len(s.Tenders) {
		return ErrTenderNotFound
	}
	if err := t.Validate(); err != nil {
		return err
	}
	s.Tenders[i] = t
	return nil
}

// FillExactAmount sets the first tender to whatever is still owed after the others.
func (s *InvoiceSession) FillExactAmount() {
	if len(s.Tenders) == 0 {
		s.Tenders = []Tender{CashTender()}
	}
	others := s.TotalPaid().Sub(s.Tenders[0].Amount)
	remaining := s.Totals.Total.Sub(others)
	if remaining.IsPositive() {
		s.Tenders[0].Amount = remaining
	} else {
		s.Tenders[0].Amount = s.Totals.Total
	}
}

// Clone returns a deep copy safe to read outside the register lock.
func (s *InvoiceSession) Clone() *InvoiceSession {
	c := *s
	c.Lines = make([]*CartLine, len(s.Lines))
	for i, l := range s.Lines {
		line := *l
		c.Lines[i] = &line
	}
	c.Tenders = make([]Tender, len(s.Tenders))
	for i, t := range s.Tenders {
		if t.Months != nil {
			m := *t.Months
			t.Months = &m
		}
		c.Tenders[i] = t
	}
	if s.Customer != nil {
		cust := *s.Customer
		c.Customer = &cust
	}
	if s.Delivery != nil {
		d := *s.Delivery
		c.Delivery = &d
	}
	return &c
}
