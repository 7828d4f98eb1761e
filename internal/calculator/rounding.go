package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoundWhole rounds to the nearest whole unit, ties to even.
func RoundWhole(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(0).InexactFloat64()
}

// PercentChange returns (to-from)/from*100. The arithmetic runs in decimal so
// that whole-unit prices produce exact threshold values.
func PercentChange(from, to float64) (float64, error) {
	if from == 0 {
		return 0, errors.New("percent change from zero is undefined")
	}
	f := decimal.NewFromFloat(from)
	t := decimal.NewFromFloat(to)
	return t.Sub(f).Div(f).Mul(hundred).InexactFloat64(), nil
}
