package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func committedSession() *entity.InvoiceSession {
	s := payloadSession()
	s.InvoiceNumber = "FE-2001"
	s.CreatedAt = time.Date(2026, 4, 2, 15, 30, 0, 0, time.UTC)
	months := 3
	s.Tenders = []entity.Tender{
		{Type: enum.TenderCash, Amount: d("2000")},
		{Type: enum.TenderFinanced, Amount: d("1300"), Months: &months},
	}
	return s
}

func TestReceiptForSession(t *testing.T) {
	h := newHarness()
	r := h.printing.ReceiptForSession(committedSession())

	assert.Equal(t, "FE-2001", r.InvoiceNo)
	assert.Equal(t, "2026-04-02 15:30", r.Date)
	assert.Equal(t, entity.WalkInCustomerName, r.Customer)
	require.Len(t, r.Items, 1)
	assert.Equal(t, 3, r.Items[0].Quantity)
	assertDec(t, "300", r.Items[0].Discount, "item discount")
	assertDec(t, "3213", r.Total, "total")
	assertDec(t, "87", r.Change, "change")
	assertDec(t, "1300", r.TotalFinanced, "financed")
	require.Len(t, r.Tenders, 2)
	assert.Equal(t, enum.TenderFinanced.Label(), r.Tenders[1].Label)
}

func TestFormatReceiptContents(t *testing.T) {
	h := newHarness()
	out := h.printing.FormatReceipt(h.printing.ReceiptForSession(committedSession()))

	assert.True(t, bytes.HasPrefix(out, []byte{0x1B, 0x40}))
	assert.Contains(t, string(out), "FE-2001")
	assert.Contains(t, string(out), "3,213")
	assert.Contains(t, string(out), "TOTAL COP:")
	assert.Contains(t, string(out), "(3 meses)")
	assert.Contains(t, string(out), "Gracias por su compra")
}

func TestPrintSaleFromJournal(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sale, err := h.journal.Record(ctx, testTerminal, committedSession())
	require.NoError(t, err)

	r, err := h.printing.PrintSale(ctx, testTerminal.CompanyID, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "FE-2001", r.InvoiceNo)
	assertDec(t, "87", r.Change, "change")
	assert.Len(t, h.printer.jobs, 1)

	_, err = h.printing.PrintSale(ctx, testTerminal.CompanyID, uuid.New())
	assert.Error(t, err)
	_, err = h.printing.PrintSale(ctx, testTerminal.CompanyID+1, sale.ID)
	assert.Error(t, err)
}

func TestPrinterStatusAndTestPrint(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	status := h.printing.GetStatus(ctx)
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, "recording", status.Type)

	r, err := h.printing.TestPrint(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PRUEBA-001", r.InvoiceNo)
	assert.Len(t, h.printer.jobs, 1)

	h.printer.err = errBackendDown
	_, err = h.printing.TestPrint(ctx)
	assert.ErrorIs(t, err, errBackendDown)
}
