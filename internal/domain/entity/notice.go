package entity

import (
	"fmt"

	"github.com/sangkips/pos-register/internal/domain/enum"
)

// Notice is a short message for the cashier attached to the outcome of a mutation.
type Notice struct {
	Severity enum.NoticeSeverity `json:"severity"`
	Summary  string              `json:"summary"`
	Detail   string              `json:"detail"`
}

func NewNotice(severity enum.NoticeSeverity, summary, format string, args ...interface{}) Notice {
	return Notice{Severity: severity, Summary: summary, Detail: fmt.Sprintf(format, args...)}
}

func PrintFailedNotice(invoiceNumber string) Notice {
	return NewNotice(enum.NoticeWarn, "Impresora", "No se pudo imprimir el recibo de %s", invoiceNumber)
}
