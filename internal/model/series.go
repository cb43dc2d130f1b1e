package model

import "time"

// Series is an ordered time series. Times and Values always have equal length.
type Series struct {
	Times  []time.Time
	Values []float64
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Times) }

// Sum returns the sum of all values.
func (s Series) Sum() float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	return total
}

// POASeries holds the plane-of-array irradiance components per timestamp,
// all in W/m².
type POASeries struct {
	Times         []time.Time
	Direct        []float64
	SkyDiffuse    []float64
	GroundDiffuse []float64
}

// Total returns the summed POA irradiance as a Series.
func (p POASeries) Total() Series {
	values := make([]float64, len(p.Times))
	for i := range values {
		values[i] = p.Direct[i] + p.SkyDiffuse[i] + p.GroundDiffuse[i]
	}
	return Series{Times: p.Times, Values: values}
}
