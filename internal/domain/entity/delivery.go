package entity

import "strings"

// DeliveryInfo is the optional shipping block of an invoice.
type DeliveryInfo struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// OneLine renders the address for receipts.
func (d *DeliveryInfo) OneLine() string {
	if d == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{d.Address, d.City, d.State, d.ZipCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
