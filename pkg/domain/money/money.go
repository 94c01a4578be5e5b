// Package money provides the Money value object used for every balance and
// transaction amount in the ledger.
//
// Amounts are stored as int64 minor units (cents), never as floats, so
// arithmetic is exact and comparisons are total. The ledger is single-currency;
// the scale is fixed at two fractional digits.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scale is the number of fractional digits carried by every amount.
const Scale = 2

const minorPerUnit = 100 // 10^Scale

var (
	// ErrInvalidAmount is returned when a decimal string cannot be parsed
	// into an amount, or carries more fractional digits than Scale allows.
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// ErrOverflow is returned when an arithmetic operation would exceed the
	// representable range.
	ErrOverflow = errors.New("monetary amount overflows")
)

// Money is an immutable monetary value.
// The zero value is a valid amount of zero.
type Money struct {
	minor int64
}

// Zero is the zero amount.
var Zero = Money{}

// NewFromMinorUnits creates a Money from an amount already expressed in minor
// units (e.g. cents). Used for store hydration and test fixtures.
func NewFromMinorUnits(minor int64) Money {
	return Money{minor: minor}
}

// Parse converts a decimal string such as "100", "42.5" or "-0.07" into Money.
// At most Scale fractional digits are accepted; Parse never rounds.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalidAmount
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return Zero, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > Scale {
		return Zero, fmt.Errorf("%w: more than %d fractional digits in %q", ErrInvalidAmount, Scale, s)
	}
	for _, c := range whole + frac {
		if c < '0' || c > '9' {
			return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	// Right-pad the fraction to the full scale so "4.5" means 450 minor units.
	frac += strings.Repeat("0", Scale-len(frac))

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if units > (math.MaxInt64-cents)/minorPerUnit {
		return Zero, ErrOverflow
	}
	minor := units*minorPerUnit + cents
	if neg {
		minor = -minor
	}
	return Money{minor: minor}, nil
}

// MustParse is Parse that panics on error. Intended for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MinorUnits returns the amount in minor units.
func (m Money) MinorUnits() int64 { return m.minor }

// Add returns m + other, failing on int64 overflow.
func (m Money) Add(other Money) (Money, error) {
	sum := m.minor + other.minor
	if (other.minor > 0 && sum < m.minor) || (other.minor < 0 && sum > m.minor) {
		return Zero, ErrOverflow
	}
	return Money{minor: sum}, nil
}

// Sub returns m - other, failing on int64 overflow.
func (m Money) Sub(other Money) (Money, error) {
	diff := m.minor - other.minor
	if (other.minor < 0 && diff < m.minor) || (other.minor > 0 && diff > m.minor) {
		return Zero, ErrOverflow
	}
	return Money{minor: diff}, nil
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.minor < other.minor:
		return -1
	case m.minor > other.minor:
		return 1
	default:
		return 0
	}
}

// Equals reports whether two amounts are identical.
func (m Money) Equals(other Money) bool { return m.minor == other.minor }

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool { return m.minor > 0 }

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool { return m.minor < 0 }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.minor == 0 }

// String renders the amount as a canonical decimal string, e.g. "-12.05".
func (m Money) String() string {
	minor := m.minor
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/minorPerUnit, minor%minorPerUnit)
}
