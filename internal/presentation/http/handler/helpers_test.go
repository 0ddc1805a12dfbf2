package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/infrastructure/client"
	"github.com/sangkips/pos-register/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"app error passes through", apperror.NewBadRequestError("bad"), http.StatusBadRequest},
		{"stock rejection", &entity.StockError{ProductID: 1, Requested: 2}, http.StatusConflict},
		{"checkout rejection", &entity.CheckoutRejectedError{Code: 3, Message: "NIT invalido"}, http.StatusUnprocessableEntity},
		{"busy session", entity.ErrSessionBusy, http.StatusConflict},
		{"wrapped not found", fmt.Errorf("lookup: %w", entity.ErrProductNotFound), http.StatusNotFound},
		{"payment mismatch", fmt.Errorf("%w: difference 10", entity.ErrPaymentMismatch), http.StatusUnprocessableEntity},
		{"reservation transport", fmt.Errorf("%w: refused", entity.ErrReservationTransport), http.StatusBadGateway},
		{"backend status", &client.StatusError{Endpoint: "pos/CreateInvoice", StatusCode: 500}, http.StatusBadGateway},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, toAppError(tt.err).Code)
		})
	}
}

func TestCheckoutRejectionKeepsBackendMessage(t *testing.T) {
	appErr := toAppError(&entity.CheckoutRejectedError{Code: 3, Message: "NIT invalido"})
	assert.Equal(t, "NIT invalido", appErr.Message)
}

func TestParseBound(t *testing.T) {
	start, err := parseBound("2026-03-10", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), *start)

	end, err := parseBound("2026-03-10", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, int(999*time.Millisecond), time.Local), *end)

	ts, err := parseBound("2026-03-10T08:30:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC), ts.UTC())

	none, err := parseBound("", false)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = parseBound("10/03/2026", false)
	assert.Error(t, err)
}
