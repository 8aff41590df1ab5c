package tradehub

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Display formatting for amounts and rates. These rules only shape what a
// human reads; stored and computed values stay full-precision float64.

// DisplayPrecision returns the number of decimals for rendering amounts of
// a code: 4 for the high-precision (crypto) set, 2 otherwise. Unregistered
// codes fall back to 2.
func DisplayPrecision(code string) int {
	cur, err := Resolve(code)
	if err != nil {
		return 2
	}
	return cur.DisplayPrecision()
}

// FormatAmount renders an amount in the code's display precision.
func FormatAmount(code string, v float64) string {
	return decimal.NewFromFloat(v).StringFixed(int32(DisplayPrecision(code)))
}

// FormatCash renders a fiat amount with its currency symbol and grouping,
// e.g. "$1,234.56". Codes go-money does not know fall back to FormatAmount
// with the code appended.
func FormatCash(code string, v float64) string {
	if money.GetCurrency(code) == nil {
		return FormatAmount(code, v) + " " + code
	}
	cur := money.New(0, code).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// FormatRate renders a rate with up to 8 decimals, trailing zeros trimmed.
func FormatRate(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(8)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
