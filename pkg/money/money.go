// Package money renders decimal amounts for cashier screens and receipts.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter prints amounts in one currency with locale grouping.
type Formatter struct {
	unit     currency.Unit
	decimals int32
	printer  *message.Printer
}

// NewFormatter builds a formatter for an ISO 4217 code and a BCP 47 locale.
func NewFormatter(code, locale string, decimals int) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	if decimals < 0 {
		decimals = 0
	}
	return &Formatter{
		unit:     unit,
		decimals: int32(decimals),
		printer:  message.NewPrinter(tag),
	}, nil
}

// Number formats the amount without the currency code.
func (f *Formatter) Number(d decimal.Decimal) string {
	v, _ := d.Round(f.decimals).Float64()
	return f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(int(f.decimals)),
		number.MaxFractionDigits(int(f.decimals)),
	))
}

// Format prefixes the number with the currency code.
func (f *Formatter) Format(d decimal.Decimal) string {
	return f.unit.String() + " " + f.Number(d)
}

func (f *Formatter) Code() string {
	return f.unit.String()
}

// Round applies the currency's display precision.
func (f *Formatter) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(f.decimals)
}
