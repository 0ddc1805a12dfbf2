package handler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/application/service"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/infrastructure/client"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-register/internal/presentation/http/middleware"
	"github.com/sangkips/pos-register/pkg/apperror"
	"github.com/sangkips/pos-register/pkg/utils"
)

// terminal identifies the register making the request. It answers 401 itself when the
// request carries no company or user.
func terminal(c *gin.Context) (service.Terminal, bool) {
	t := service.Terminal{
		CompanyID: middleware.GetCompanyID(c),
		UserID:    middleware.GetUserID(c),
	}
	if t.CompanyID == 0 || t.UserID == 0 {
		response.Unauthorized(c, "User not authenticated")
		return t, false
	}
	return t, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return n, true
}

// toAppError maps domain and transport failures onto HTTP answers.
func toAppError(err error) *apperror.AppError {
	if apperror.IsAppError(err) {
		return apperror.GetAppError(err)
	}

	var stockErr *entity.StockError
	var rejected *entity.CheckoutRejectedError
	var statusErr *client.StatusError
	var netErr net.Error

	switch {
	case errors.As(err, &stockErr):
		return apperror.Wrap(http.StatusConflict, "Insufficient stock", err)
	case errors.As(err, &rejected):
		return apperror.Wrap(http.StatusUnprocessableEntity, rejected.Message, err)
	case errors.Is(err, entity.ErrSessionBusy):
		return apperror.Wrap(http.StatusConflict, "Invoice is busy, try again", err)
	case errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrLineNotFound),
		errors.Is(err, entity.ErrProductNotFound),
		errors.Is(err, entity.ErrCustomerNotFound),
		errors.Is(err, entity.ErrTenderNotFound):
		return apperror.Wrap(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, entity.ErrEmptyCart),
		errors.Is(err, entity.ErrPaymentMismatch),
		errors.Is(err, entity.ErrNegativeQuantity),
		errors.Is(err, entity.ErrLastTender),
		errors.Is(err, entity.ErrInvalidTender):
		return apperror.Wrap(http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.Wrap(http.StatusGatewayTimeout, "Request timed out", err)
	case errors.Is(err, context.Canceled):
		return apperror.Wrap(499, "Request cancelled", err)
	case errors.Is(err, entity.ErrReservationTransport),
		errors.Is(err, entity.ErrCheckoutTransport),
		errors.As(err, &statusErr),
		errors.As(err, &netErr):
		return apperror.Wrap(http.StatusBadGateway, "Retail backend unavailable", err)
	}
	return apperror.GetAppError(err)
}

func fail(c *gin.Context, err error) {
	failWith(c, err, nil, nil)
}

// failWith answers an error while still returning the state the cashier should see.
func failWith(c *gin.Context, err error, data interface{}, notices []entity.Notice) {
	_ = c.Error(err)
	response.ErrorWithData(c, toAppError(err), data, notices)
}
