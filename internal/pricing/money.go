package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Money represents a monetary value stored in minor units.
type Money = int64

// FromFloat converts a major-unit amount into minor units, rounding half away
// from zero at the cent boundary. Rounding works on the shortest decimal form
// of the amount: 1.005 is stored as 1.00499..., so arithmetic on the binary
// value would drop the half cent. Non-finite amounts convert to 0.
func FromFloat(amount float64) Money {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	text := strconv.FormatFloat(amount, 'f', -1, 64)
	negative := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")
	intPart, fracPart, _ := strings.Cut(text, ".")
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0
	}
	padded := fracPart + "00"
	cents := whole*100 + int64(padded[0]-'0')*10 + int64(padded[1]-'0')
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		cents++
	}
	if negative {
		return -cents
	}
	return cents
}

// Float converts minor units back into major units for presentation. The
// division by 100 is exact for every int64, so no further rounding happens here.
func Float(m Money) float64 {
	return float64(m) / 100
}

// Share returns the given basis-point share of the amount, rounding half away
// from zero. Share(1000, 1500) is 15% of 10.00.
func Share(m Money, bps int64) Money {
	raw := m * bps
	if raw >= 0 {
		return (raw + 5000) / 10000
	}
	return -((-raw + 5000) / 10000)
}

// UnitTimesQty multiplies a per-unit minor amount by a quantity. Negative
// quantities are treated as zero.
func UnitTimesQty(unit Money, qty int) Money {
	if qty <= 0 {
		return 0
	}
	return unit * Money(qty)
}
