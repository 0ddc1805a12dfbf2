package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-register/internal/application/service"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/response"
)

// PrinterHandler exposes the thermal printer attached to the register
type PrinterHandler struct {
	printers *service.PrinterService
}

func NewPrinterHandler(printers *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printers: printers}
}

func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printers.GetStatus(c.Request.Context()))
}

func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printers.TestPrint(c.Request.Context())
	printed(c, "Test page sent to printer", receipt, err)
}

// printed answers a print job. A receipt that was composed but could not be printed is
// still returned, with the printer error as a warning notice.
func printed(c *gin.Context, message string, receipt *entity.Receipt, err error) {
	if err != nil && receipt == nil {
		fail(c, err)
		return
	}
	data := gin.H{"receipt": receipt}
	if err != nil {
		_ = c.Error(err)
		data["warning"] = err.Error()
		response.SuccessWithNotices(c, http.StatusOK, "Receipt generated but printing failed", data,
			[]entity.Notice{entity.PrintFailedNotice(receipt.InvoiceNo)})
		return
	}
	response.OK(c, message, data)
}
