package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDecodesNumericCode(t *testing.T) {
	var p Product
	raw := `{"id":7,"code":1001,"name":"Arroz","price":2500,"stock":12,"manageStock":true,"hasDiscount":null,"discountPercent":null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, FlexString("1001"), p.Code)
	assert.True(t, dec("2500").Equal(p.Price))
	assert.False(t, p.HasDiscount)
	assert.True(t, p.PromotionalDiscount().IsZero())
}

func TestProductMatching(t *testing.T) {
	p := Product{ID: 1, Code: "1001", Name: "Arroz Diana", Barcode: "7701234", Category: "Granos", Tag: "promo"}

	assert.True(t, p.MatchesBarcode(" 7701234 "))
	assert.False(t, p.MatchesBarcode("770123"))
	assert.False(t, p.MatchesBarcode(""))

	assert.True(t, p.MatchesCodeOrName("1001"))
	assert.True(t, p.MatchesCodeOrName("DIANA"))
	assert.False(t, p.MatchesCodeOrName("100"))

	assert.True(t, p.MatchesSearch("gran"))
	assert.True(t, p.MatchesSearch("PROMO"))
	assert.True(t, p.MatchesSearch(""))
	assert.False(t, p.MatchesSearch("leche"))
}

func TestCustomerInvoiceName(t *testing.T) {
	var none *Customer
	assert.Equal(t, WalkInCustomerName, none.InvoiceName(WalkInCustomerName))

	c := &Customer{FirstName: "Ana", LastName: "Ruiz", Document: "123"}
	assert.Equal(t, "Ana Ruiz", c.InvoiceName(WalkInCustomerName))
	assert.Equal(t, "123", c.TaxID())

	c.BusinessName = "Tienda Ana SAS"
	c.Nit = "900-1"
	assert.Equal(t, "Tienda Ana SAS", c.InvoiceName(WalkInCustomerName))
	assert.Equal(t, "900-1", c.TaxID())
}
