package view

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Currency prefixes every displayed amount.
const Currency = "RM"

// FormatPrice renders an amount as RM with two decimal places.
func FormatPrice(amount decimal.Decimal) string {
	return Currency + amount.StringFixed(2)
}

func categoryLabel(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[size:]
}
