// Package money formats and parses monetary amounts for display.
//
// All amounts are in US dollars and are shown with two fractional digits.
package money

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer      = message.NewPrinter(language.AmericanEnglish)
	nonNumeric   = regexp.MustCompile(`[^0-9.\-]+`)
	hundred      = decimal.NewFromInt(100)
	maxGrouped   = decimal.NewFromInt(math.MaxInt64)
	currencySign = "$"
)

// FormatCurrency renders amount as "$1,234.50", or "-$1,234.50" for negative amounts.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	fixed := rounded.StringFixed(2)
	cents := fixed[len(fixed)-2:]
	return sign + currencySign + groupUnits(rounded.Truncate(0)) + "." + cents
}

// groupUnits inserts thousands separators into a non-negative whole amount. Amounts past
// the int64 range cannot go through the printer and are grouped by hand.
func groupUnits(units decimal.Decimal) string {
	if units.LessThanOrEqual(maxGrouped) {
		return printer.Sprintf("%d", units.IntPart())
	}
	digits := units.String()
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// FormatPercentage renders value as a rounded share of total, "0%" when total is zero.
func FormatPercentage(value, total decimal.Decimal) string {
	if total.IsZero() {
		return "0%"
	}
	return Percentage(value, total).Round(0).String() + "%"
}

// Percentage returns value/total*100, or zero when total is zero.
func Percentage(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return value.Mul(hundred).Div(total)
}

var ErrNoAmount = errors.New("no amount")

// ParseAmount reads an amount typed by a user, ignoring currency signs and grouping.
// Input without digits or that does not clean up to a number returns an error wrapping ErrNoAmount.
func ParseAmount(value string) (decimal.Decimal, error) {
	cleaned := nonNumeric.ReplaceAllString(strings.TrimSpace(value), "")
	if strings.Trim(cleaned, ".-") == "" {
		return decimal.Zero, fmt.Errorf("%q: %w", value, ErrNoAmount)
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w: %v", value, ErrNoAmount, err)
	}
	return amount, nil
}

// ParseCurrency is ParseAmount for display paths. Unparseable input yields zero.
func ParseCurrency(value string) decimal.Decimal {
	amount, err := ParseAmount(value)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
