// Package moneyfmt renders decimal amounts for documents and spreadsheets.
package moneyfmt

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultCurrency = "USD"

var printer = message.NewPrinter(language.English)

// Format returns amount with thousands separators and two fraction digits, prefixed by currency.
func Format(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	value := amount.Round(2).InexactFloat64()
	return printer.Sprintf("%s %v", currency, number.Decimal(value, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
