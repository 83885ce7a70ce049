package normalizer

import (
	"github.com/shopspring/decimal"
)

// DistributeUnits divide um total inteiro igualmente entre os dias.
// O resto vai para os primeiros dias, de forma que a soma seja sempre igual ao total.
func DistributeUnits(total, days int) []int {
	if days <= 0 {
		return nil
	}

	base := total / days
	rem := total - base*days

	out := make([]int, days)
	for i := range out {
		out[i] = base
	}
	step := 1
	if rem < 0 {
		step, rem = -1, -rem
	}
	for i := 0; i < rem; i++ {
		out[i] += step
	}

	return out
}

// DistributeAmount distribui um valor monetário em centavos pelo mesmo critério
func DistributeAmount(total decimal.Decimal, days int) []float64 {
	if days <= 0 {
		return nil
	}

	cents := total.Shift(2).Round(0).IntPart()
	parts := DistributeUnits(int(cents), days)

	out := make([]float64, days)
	for i, c := range parts {
		out[i] = decimal.New(int64(c), -2).InexactFloat64()
	}
	return out
}
