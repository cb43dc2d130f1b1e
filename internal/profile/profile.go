// Package profile rescales canonical load-profile shapes to user targets and
// aligns them to simulation timestamps.
package profile

import (
	"time"
)

// ECarKWhPer100Km converts an annual driving distance into charging energy.
const ECarKWhPer100Km = 18.0

// Shape is a reference-year consumption shape at 15-minute resolution.
type Shape struct {
	Times  []time.Time
	Values []float64
}

// Sum returns the total energy of the shape.
func (s Shape) Sum() float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Scale returns a copy rescaled so the shape sums to targetKWh. The temporal
// distribution is preserved exactly. A zero-sum shape is returned unchanged.
func (s Shape) Scale(targetKWh float64) Shape {
	sum := s.Sum()
	out := Shape{Times: s.Times, Values: make([]float64, len(s.Values))}
	if sum == 0 {
		copy(out.Values, s.Values)
		return out
	}
	factor := targetKWh / sum
	for i, v := range s.Values {
		out.Values[i] = v * factor
	}
	return out
}

// ECarAnnualKWh converts km/year into kWh/year at the fixed consumption rate.
func ECarAnnualKWh(kmPerYear float64) float64 {
	return kmPerYear / 100 * ECarKWhPer100Km
}

// AlignStats counts intervals that could not be matched exactly during
// calendar alignment, for downstream data-quality reporting.
type AlignStats struct {
	// Clamped counts targets whose day-of-year exceeded the shape's last
	// day and were clamped to it (leap-year Dec 31 against a 365-day shape).
	Clamped int
	// Missing counts targets with no matching shape entry, defaulted to 0.
	Missing int
}

// Add accumulates counts from another alignment pass.
func (a *AlignStats) Add(b AlignStats) {
	a.Clamped += b.Clamped
	a.Missing += b.Missing
}

type shapeKey struct {
	dayOfYear   int
	minuteOfDay int
}

// Align looks up the shape value for every target timestamp by
// (day-of-year, minute-of-day). Targets beyond the shape's last day clamp to
// it; targets with no matching key default to zero. Both conditions are
// counted, never raised.
func Align(shape Shape, targets []time.Time) ([]float64, AlignStats) {
	lookup := make(map[shapeKey]float64, len(shape.Times))
	maxDoy := 0
	for i, ts := range shape.Times {
		doy := ts.YearDay()
		if doy > maxDoy {
			maxDoy = doy
		}
		lookup[shapeKey{doy, ts.Hour()*60 + ts.Minute()}] = shape.Values[i]
	}

	values := make([]float64, len(targets))
	var stats AlignStats
	for i, ts := range targets {
		doy := ts.YearDay()
		if doy > maxDoy {
			doy = maxDoy
			stats.Clamped++
		}
		v, ok := lookup[shapeKey{doy, ts.Hour()*60 + ts.Minute()}]
		if !ok {
			stats.Missing++
			continue
		}
		values[i] = v
	}
	return values, stats
}

// ZeroSeries returns an all-zero consumption series for n intervals, used for
// categories the user did not configure.
func ZeroSeries(n int) []float64 {
	return make([]float64, n)
}

// Synthetic builds a generic day/night banded shape for n intervals, sized
// around the average interval of annualKWh. The band factors skew the raw
// sum, so callers rescale via Scale to hit an exact target. Emergency
// fallback only; it carries no seasonal pattern.
func Synthetic(n int, annualKWh float64) []float64 {
	avg := annualKWh / (365 * 96)
	values := make([]float64, n)
	for i := range values {
		hour := (i / 4) % 24
		factor := 1.0
		switch {
		case hour >= 6 && hour < 9:
			factor = 1.5
		case hour >= 17 && hour < 22:
			factor = 1.8
		case hour < 6:
			factor = 0.5
		}
		values[i] = avg * factor
	}
	return values
}
