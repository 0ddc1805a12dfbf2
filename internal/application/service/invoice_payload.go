package service

import (
	"encoding/json"
	"fmt"

	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/gateway"
	"github.com/shopspring/decimal"
)

// PayloadOptions are the company defaults applied when an invoice is serialized.
type PayloadOptions struct {
	WalkInName  string
	WarehouseID int64
}

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// BuildInvoicePayload serializes a session into the CreateInvoice body.
func BuildInvoicePayload(t Terminal, sess *entity.InvoiceSession, opts PayloadOptions) (*gateway.InvoicePayload, error) {
	walkIn := opts.WalkInName
	if walkIn == "" {
		walkIn = entity.WalkInCustomerName
	}
	warehouse := opts.WarehouseID
	if warehouse <= 0 {
		warehouse = 1
	}

	items := make([]gateway.InvoiceItemPayload, 0, len(sess.Lines))
	for _, l := range sess.Lines {
		items = append(items, gateway.InvoiceItemPayload{
			ID:            l.Product.ID,
			WarehouseID:   warehouse,
			ManageStock:   l.Product.ManageStock,
			Quantity:      l.Quantity.Confirmed,
			Price:         amount(l.Product.Price),
			Discount:      amount(l.Discount),
			DiscountValue: amount(l.DiscountValue),
			Subtotal:      amount(l.Subtotal),
			Total:         amount(l.Total),
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	payments := make([]gateway.InvoicePaymentPayload, 0, len(sess.Tenders))
	for _, t := range sess.Tenders {
		payments = append(payments, gateway.InvoicePaymentPayload{
			Type:   t.Type.String(),
			Amount: amount(t.Amount),
			Months: t.Months,
		})
	}
	paymentsJSON, err := json.Marshal(payments)
	if err != nil {
		return nil, fmt.Errorf("encode payments: %w", err)
	}

	payload := &gateway.InvoicePayload{
		CompaniaID:      t.CompanyID,
		UserID:          t.UserID,
		ClientName:      sess.Customer.InvoiceName(walkIn),
		ClientNit:       sess.Customer.TaxID(),
		Subtotal:        amount(sess.Totals.Subtotal),
		GrossSubtotal:   amount(sess.Totals.GrossSubtotal),
		GeneralDiscount: amount(sess.GeneralDiscount),
		DetailDiscount:  amount(sess.Totals.DetailDiscount),
		TotalVat:        amount(sess.Totals.TotalVAT),
		TotalInvoice:    amount(sess.Totals.Total),
		Items:           string(itemsJSON),
		Payments:        string(paymentsJSON),
	}
	if sess.Customer != nil {
		id := sess.Customer.ID
		payload.ClientID = &id
	}
	if d := sess.Delivery; d != nil {
		raw, err := json.Marshal(gateway.InvoiceDeliveryPayload{
			Address: d.Address,
			City:    d.City,
			State:   d.State,
			ZipCode: d.ZipCode,
			Phone:   d.Phone,
			Notes:   d.Notes,
		})
		if err != nil {
			return nil, fmt.Errorf("encode delivery: %w", err)
		}
		delivery := string(raw)
		payload.Delivery = &delivery
	}

	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}
