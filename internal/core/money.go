// Package core holds the domain types shared by every other package:
// fixed-point money, calendar dates and the ledger records built from them.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user- or file-supplied amount string to Money.
//
// It tolerates the formats seen in bank exports: currency symbols (₹, $)
// and thousands commas ("1,250.50", "1,250") are stripped before parsing.
// Half-up rounding is applied on the third decimal place. Negative amounts
// are rejected; zero is allowed (manual entry enforces positivity
// separately).
//
// Examples:
//
//	ParseAmount("₹1,250.50") -> 125050 cents
//	ParseAmount("₹1,250")    -> 125000 cents
//	ParseAmount("$12.34")    -> 1234 cents
//	ParseAmount("12.346")    -> 1235 cents (rounds up)
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") {
		return Money{}, ErrNegativeAmount
	}
	s = strings.TrimPrefix(s, "+")

	// Commas are always thousands separators in this input format; a
	// bare "1,250" means twelve hundred fifty, not 1.25.
	s = strings.ReplaceAll(s, ",", "")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, ErrInvalidAmount
	}

	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return Money{Cents: iv*100 + fracCents}, nil
}

// Amount returns the value in currency units as a float64. This exists for
// the REAL storage column and for display formatting; calculations stay on
// cents.
func (m Money) Amount() float64 {
	return float64(m.Cents) / 100.0
}

// MoneyFromAmount converts a currency-unit float back to cents with
// rounding, used when reading the REAL storage column.
func MoneyFromAmount(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

// String formats the amount with two decimals, e.g. "1250.50".
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Amount())
}
