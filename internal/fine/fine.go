// Package fine handles overdue fine amounts.
//
// Amounts are plain floating-point currency values. They are only ever
// added together and displayed with two decimal places.
package fine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/circdesk/internal/models"
)

var ErrInvalidAmount = errors.New("invalid amount")

// DefaultCurrency is the symbol printed in front of amounts
const DefaultCurrency = "Rs"

// Amount is an immutable fine value
type Amount float64

// Combine returns the sum of two amounts
func Combine(a, b Amount) Amount {
	return a + b
}

// Parse reads an amount such as "10.50" or "10,50".
//
// Examples:
//
//	Parse("10.50") -> 10.5, nil
//	Parse("5,25")  -> 5.25, nil
//	Parse("abc")   -> 0, ErrInvalidAmount
func Parse(s string) (Amount, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Amount(v), nil
}

// ForRecord multiplies the book's category rate by the number of overdue units
func ForRecord(r *models.Record, units float64) Amount {
	return Amount(r.FineRate() * units)
}

// Format renders the amount with the given currency symbol
func (a Amount) Format(currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return fmt.Sprintf("%s %.2f", currency, float64(a))
}

func (a Amount) String() string {
	return a.Format(DefaultCurrency)
}
