package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/sangkips/pos-register/internal/domain/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadSession() *entity.InvoiceSession {
	s := entity.NewInvoiceSession(0, "FV-001", time.Now())
	l := entity.NewCartLine(entity.Product{ID: 7, Name: "Cuaderno", Price: d("1000"), ManageStock: true})
	l.Quantity.Settle(3)
	l.SetDiscount(d("10"))
	s.Lines = []*entity.CartLine{l}
	NewTotalsEngine(d("19")).Recompute(s)
	s.FillExactAmount()
	return s
}

func TestBuildInvoicePayloadWalkIn(t *testing.T) {
	p, err := BuildInvoicePayload(testTerminal, payloadSession(), PayloadOptions{})
	require.NoError(t, err)

	assert.Equal(t, entity.WalkInCustomerName, p.ClientName)
	assert.Nil(t, p.ClientID)
	assert.Empty(t, p.ClientNit)
	assert.Nil(t, p.Delivery)
	assert.Equal(t, json.Number("3000"), p.GrossSubtotal)
	assert.Equal(t, json.Number("300"), p.DetailDiscount)
	assert.Equal(t, json.Number("2700"), p.Subtotal)
	assert.Equal(t, json.Number("513"), p.TotalVat)
	assert.Equal(t, json.Number("3213"), p.TotalInvoice)

	var items []gateway.InvoiceItemPayload
	require.NoError(t, json.Unmarshal([]byte(p.Items), &items))
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, int64(1), items[0].WarehouseID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, json.Number("2700"), items[0].Total)

	var payments []gateway.InvoicePaymentPayload
	require.NoError(t, json.Unmarshal([]byte(p.Payments), &payments))
	require.Len(t, payments, 1)
	assert.Equal(t, "cash", payments[0].Type)
	assert.Equal(t, json.Number("3213"), payments[0].Amount)
}

func TestBuildInvoicePayloadCustomerAndDelivery(t *testing.T) {
	s := payloadSession()
	s.Customer = &entity.Customer{ID: 55, BusinessName: "Papelería Central", Nit: "900123456"}
	s.Delivery = &entity.DeliveryInfo{Address: "Calle 10 # 5-20", City: "Medellín"}
	months := 6
	s.Tenders = []entity.Tender{{Type: enum.TenderFinanced, Amount: d("3213"), Months: &months}}

	p, err := BuildInvoicePayload(testTerminal, s, PayloadOptions{WalkInName: "Cliente", WarehouseID: 4})
	require.NoError(t, err)

	require.NotNil(t, p.ClientID)
	assert.Equal(t, int64(55), *p.ClientID)
	assert.Equal(t, "Papelería Central", p.ClientName)
	assert.Equal(t, "900123456", p.ClientNit)

	require.NotNil(t, p.Delivery)
	var delivery gateway.InvoiceDeliveryPayload
	require.NoError(t, json.Unmarshal([]byte(*p.Delivery), &delivery))
	assert.Equal(t, "Medellín", delivery.City)

	var items []gateway.InvoiceItemPayload
	require.NoError(t, json.Unmarshal([]byte(p.Items), &items))
	assert.Equal(t, int64(4), items[0].WarehouseID)

	var payments []gateway.InvoicePaymentPayload
	require.NoError(t, json.Unmarshal([]byte(p.Payments), &payments))
	require.NotNil(t, payments[0].Months)
	assert.Equal(t, 6, *payments[0].Months)
}

func TestBuildInvoicePayloadValidates(t *testing.T) {
	s := entity.NewInvoiceSession(0, "FV-001", time.Now())
	_, err := BuildInvoicePayload(testTerminal, s, PayloadOptions{})
	assert.Error(t, err)

	_, err = BuildInvoicePayload(Terminal{}, payloadSession(), PayloadOptions{})
	assert.Error(t, err)
}
