package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-register/internal/application/service"
	"github.com/sangkips/pos-register/internal/domain/repository"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-register/pkg/pagination"
)

// SalesHandler serves the local journal of completed sales
type SalesHandler struct {
	journal  *service.SaleJournalService
	printers *service.PrinterService
}

func NewSalesHandler(journal *service.SaleJournalService, printers *service.PrinterService) *SalesHandler {
	return &SalesHandler{journal: journal, printers: printers}
}

func (h *SalesHandler) List(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	var req request.SaleFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := repository.SaleFilter{InvoiceNumber: req.InvoiceNumber}
	if req.Mine {
		filter.UserID = &t.UserID
	}
	page, err := h.journal.List(c.Request.Context(), t.CompanyID, filter, pagination.Params{Page: req.Page, PerPage: req.PerPage})
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved successfully", page)
}

func (h *SalesHandler) Get(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	sale, err := h.journal.Get(c.Request.Context(), t.CompanyID, id)
	if err != nil {
		fail(c, err)
		return
	}
	view, err := response.NewSaleDetailView(sale)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", view)
}

// PrintReceipt reprints the receipt of a journaled sale
func (h *SalesHandler) PrintReceipt(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	receipt, err := h.printers.PrintSale(c.Request.Context(), t.CompanyID, id)
	printed(c, "Receipt printed successfully", receipt, err)
}
