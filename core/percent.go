package core

import "math"

// Percent 把 [0,1] 的比例换算为 0–100 的百分数，并按 precision 位小数四舍五入。
// precision < 0 时不做舍入。
func Percent(ratio float64, precision int) float64 {
	return Round(ratio*100, precision)
}

// Round 按 precision 位小数四舍五入；precision < 0 时原样返回。
func Round(v float64, precision int) float64 {
	if precision < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}
