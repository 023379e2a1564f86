package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"invest-sim/domain"
)

// MoneyFormatter renders amounts as localized currency text.
type MoneyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewMoneyFormatter creates a formatter for a BCP 47 locale and an ISO 4217
// currency code.
func NewMoneyFormatter(locale, isoCurrency string) (*MoneyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale inválido %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(isoCurrency)
	if err != nil {
		return nil, fmt.Errorf("moneda inválida %q: %w", isoCurrency, err)
	}
	return &MoneyFormatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Format renders v, or the "value too large" text when v overflowed.
func (f *MoneyFormatter) Format(v domain.Value) string {
	if v.Overflow {
		return f.overflowText()
	}
	return f.FormatAmount(v.Amount)
}

// FormatAmount renders a plain amount rounded to cents.
func (f *MoneyFormatter) FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return f.overflowText()
	}
	cents := decimal.NewFromFloat(amount).Round(2).InexactFloat64()
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(cents)))
}

func (f *MoneyFormatter) overflowText() string {
	return f.unit.String() + " " + OverflowText
}
