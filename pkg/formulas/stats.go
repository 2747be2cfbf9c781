// Package formulas provides the statistical primitives used by the
// analytics and ranking code.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// PopStdDev calculates the population standard deviation of a slice of
// float64 values. League distributions cover every team in a session, so the
// population form (divide by N) is the correct one, not the sample form.
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.PopStdDev(data, nil)
}

// ZScore returns (value - mean) / std, or nil when std is 0. A zero std
// means the distribution carries no signal, which callers must be able to
// distinguish from "exactly average".
func ZScore(value, mean, std float64) *float64 {
	if std <= 0 {
		return nil
	}
	z := (value - mean) / std
	return &z
}

// Round2 rounds to two decimal places. Applied at response boundaries only;
// internal accumulation keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
