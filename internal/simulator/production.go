package simulator

import (
	"gonum.org/v1/gonum/floats"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

// SurfaceProduction converts a plane-of-array irradiance series (W/m²) into
// per-interval energy yields (kWh) for one surface. Irradiance is treated as
// constant over each 15-minute interval.
func SurfaceProduction(poaWm2 []float64, surface model.RoofSurface) []float64 {
	hours := model.IntervalStep.Hours()
	out := make([]float64, len(poaWm2))
	for i, g := range poaWm2 {
		out[i] = surface.PeakPowerKWp * g / 1000 * surface.Efficiency * hours
	}
	return out
}

// AggregateProduction sums per-surface production series element-wise. All
// series must share the same length.
func AggregateProduction(perSurface [][]float64) []float64 {
	if len(perSurface) == 0 {
		return nil
	}
	total := make([]float64, len(perSurface[0]))
	for _, s := range perSurface {
		floats.Add(total, s)
	}
	return total
}

// SurfaceShares returns each surface's fraction of the total yield. If the
// total is zero every share is zero.
func SurfaceShares(perSurface [][]float64) []float64 {
	shares := make([]float64, len(perSurface))
	var total float64
	for i, s := range perSurface {
		shares[i] = floats.Sum(s)
		total += shares[i]
	}
	if total == 0 {
		return make([]float64, len(perSurface))
	}
	floats.Scale(1/total, shares)
	return shares
}
