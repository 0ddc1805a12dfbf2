package response

import (
	"fmt"

	"github.com/sangkips/pos-register/internal/domain/entity"
)

// SaleDetailView is a journaled sale with its lines and payments decoded.
type SaleDetailView struct {
	entity.CompletedSale
	Lines    []entity.CartLine    `json:"lines"`
	Tenders  []entity.Tender      `json:"tenders"`
	Delivery *entity.DeliveryInfo `json:"delivery"`
}

func NewSaleDetailView(sale *entity.CompletedSale) (*SaleDetailView, error) {
	lines, err := sale.Lines()
	if err != nil {
		return nil, fmt.Errorf("decode sale lines: %w", err)
	}
	tenders, err := sale.Tenders()
	if err != nil {
		return nil, fmt.Errorf("decode sale tenders: %w", err)
	}
	delivery, err := sale.Delivery()
	if err != nil {
		return nil, fmt.Errorf("decode sale delivery: %w", err)
	}
	return &SaleDetailView{CompletedSale: *sale, Lines: lines, Tenders: tenders, Delivery: delivery}, nil
}
