package entity

import "strings"

// WalkInCustomerName is used on invoices that have no customer attached.
const WalkInCustomerName = "Consumidor Final"

// Customer is a client record owned by the master-data service.
type Customer struct {
	ID                   int64  `json:"id"`
	CompaniaID           int64  `json:"companiaId"`
	UserID               int64  `json:"userId,omitempty"`
	IdentificationTypeID int64  `json:"identificationTypeId,omitempty"`
	Document             string `json:"document,omitempty"`
	FirstName            string `json:"firstName,omitempty"`
	MiddleName           string `json:"middleName,omitempty"`
	LastName             string `json:"lastName,omitempty"`
	SecondLastName       string `json:"secondLastName,omitempty"`
	Phone                string `json:"phone,omitempty"`
	Email                string `json:"email,omitempty"`
	City                 string `json:"city,omitempty"`
	Department           string `json:"department,omitempty"`
	Country              string `json:"country,omitempty"`
	Address              string `json:"address,omitempty"`
	IsCompany            bool   `json:"isCompany"`
	Nit                  string `json:"nit,omitempty"`
	BusinessName         string `json:"businessName,omitempty"`
}

// InvoiceName is the name printed on invoices: business name, then first and last name.
func (c *Customer) InvoiceName(fallback string) string {
	if c == nil {
		return fallback
	}
	if name := strings.TrimSpace(c.BusinessName); name != "" {
		return name
	}
	if name := strings.TrimSpace(c.FirstName + " " + c.LastName); name != "" {
		return name
	}
	return fallback
}

// TaxID prefers the NIT and falls back to the personal document.
func (c *Customer) TaxID() string {
	if c == nil {
		return ""
	}
	if c.Nit != "" {
		return c.Nit
	}
	return c.Document
}

// FullName joins every name part that is present.
func (c *Customer) FullName() string {
	if c == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName, c.SecondLastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Matches is used by the customer picker.
func (c *Customer) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range []string{c.FullName(), c.BusinessName, c.Document, c.Nit, c.Email, c.Phone} {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
