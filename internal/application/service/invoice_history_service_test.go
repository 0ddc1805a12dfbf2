package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/pos-register/internal/domain/gateway"
	"github.com/sangkips/pos-register/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInvoiceHistoryDefaultsToToday(t *testing.T) {
	gw := &fakeInvoices{records: []gateway.InvoiceRecord{{ID: 1, InvoiceNumber: "FE-1"}}}
	svc := NewInvoiceHistoryService(gw, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 6, 9, 14, 5, 0, 0, time.UTC) }

	records, err := svc.List(context.Background(), 10, nil, nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC), gw.listArgs[0])
	assert.Equal(t, 2026, gw.listArgs[1].Year())
	assert.Equal(t, 23, gw.listArgs[1].Hour())
}

func TestInvoiceHistoryRejectsInvertedRange(t *testing.T) {
	svc := NewInvoiceHistoryService(&fakeInvoices{}, zap.NewNop())
	start := time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	_, err := svc.List(context.Background(), 10, &start, &end)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestInvoiceHistoryGetAndCancel(t *testing.T) {
	gw := &fakeInvoices{records: []gateway.InvoiceRecord{{ID: 1, InvoiceNumber: "FE-1"}}}
	svc := NewInvoiceHistoryService(gw, zap.NewNop())
	ctx := context.Background()

	rec, err := svc.Get(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, "FE-1", rec.InvoiceNumber.String())

	_, err = svc.Get(ctx, 10, 2)
	require.NotNil(t, apperror.GetAppError(err))
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	require.NoError(t, svc.Cancel(ctx, 10, 1))

	gw.cancel = &gateway.InvoiceResult{Code: 1, Message: "La factura ya fue anulada"}
	err = svc.Cancel(ctx, 10, 1)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "La factura ya fue anulada", appErr.Message)
}
