// Package timeseries converts hourly reference-year series to 15-minute
// resolution and extracts observation windows, including windows that wrap
// around the end of the reference year.
package timeseries

import (
	"fmt"
	"math"
	"time"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

// Normalize floors every timestamp to the top of the hour, builds the
// complete hourly index over the covered span and linearly interpolates any
// gaps. Source data may carry small sub-hour offsets (the PVGIS exports are
// stamped at XX:11); flooring removes them. Leading or trailing gaps hold the
// nearest known value.
func Normalize(s model.Series) model.Series {
	if s.Len() == 0 {
		return model.Series{}
	}

	known := make(map[int64]float64, s.Len())
	var first, last time.Time
	for i, ts := range s.Times {
		h := ts.UTC().Truncate(time.Hour)
		known[h.Unix()] = s.Values[i]
		if i == 0 || h.Before(first) {
			first = h
		}
		if i == 0 || h.After(last) {
			last = h
		}
	}

	n := int(last.Sub(first)/time.Hour) + 1
	out := model.Series{
		Times:  make([]time.Time, n),
		Values: make([]float64, n),
	}

	missing := make([]bool, n)
	for i := 0; i < n; i++ {
		ts := first.Add(time.Duration(i) * time.Hour)
		out.Times[i] = ts
		if v, ok := known[ts.Unix()]; ok {
			out.Values[i] = v
		} else {
			missing[i] = true
		}
	}

	fillGaps(out.Values, missing)
	return out
}

// fillGaps linearly interpolates runs of missing values between known
// neighbors; edge runs copy the nearest known value.
func fillGaps(values []float64, missing []bool) {
	n := len(values)
	i := 0
	for i < n {
		if !missing[i] {
			i++
			continue
		}
		start := i
		for i < n && missing[i] {
			i++
		}
		// Gap run is [start, i).
		switch {
		case start == 0 && i == n:
			// All missing: leave zeros.
		case start == 0:
			for j := start; j < i; j++ {
				values[j] = values[i]
			}
		case i == n:
			for j := start; j < i; j++ {
				values[j] = values[start-1]
			}
		default:
			lo, hi := values[start-1], values[i]
			span := float64(i - start + 1)
			for j := start; j < i; j++ {
				frac := float64(j-start+1) / span
				values[j] = lo + (hi-lo)*frac
			}
		}
	}
}

// UpsampleQuarterHour resamples an hourly series to 15-minute resolution by
// linear interpolation between adjacent points. The result covers the same
// span, ending on the final hourly point.
func UpsampleQuarterHour(s model.Series) model.Series {
	n := s.Len()
	if n == 0 {
		return model.Series{}
	}
	if n == 1 {
		return model.Series{Times: []time.Time{s.Times[0]}, Values: []float64{s.Values[0]}}
	}

	out := model.Series{
		Times:  make([]time.Time, 0, (n-1)*4+1),
		Values: make([]float64, 0, (n-1)*4+1),
	}
	for i := 0; i < n-1; i++ {
		for q := 0; q < 4; q++ {
			frac := float64(q) / 4
			out.Times = append(out.Times, s.Times[i].Add(time.Duration(q)*model.IntervalStep))
			out.Values = append(out.Values, s.Values[i]+(s.Values[i+1]-s.Values[i])*frac)
		}
	}
	out.Times = append(out.Times, s.Times[n-1])
	out.Values = append(out.Values, s.Values[n-1])
	return out
}

// ExtractWindow slices the requested observation window out of a 15-minute
// reference-year series. The window's wall-clock dates are remapped onto the
// reference year; the actual requested year never matters for data lookup.
//
// A window whose real-world duration crosses a calendar-year boundary is read
// cyclically: exactly Intervals() points starting at the index nearest the
// remapped start, wrapping from the end of the reference year back to its
// beginning. The returned series always has exactly that many points.
func ExtractWindow(s model.Series, w model.Window, refYear int) (model.Series, error) {
	if err := w.Validate(); err != nil {
		return model.Series{}, err
	}
	if s.Len() == 0 {
		return model.Series{}, fmt.Errorf("extracting window: empty reference series")
	}

	startRef := mapToYear(w.Start, refYear)

	if w.End.Year() > w.Start.Year() {
		return extractCyclic(s, startRef, w.Intervals()), nil
	}

	endRef := mapToYear(w.End, refYear)
	out := model.Series{}
	for i, ts := range s.Times {
		if !ts.Before(startRef) && !ts.After(endRef) {
			out.Times = append(out.Times, ts)
			out.Values = append(out.Values, s.Values[i])
		}
	}
	if out.Len() == 0 {
		return model.Series{}, fmt.Errorf("extracting window: no reference data within [%s, %s]",
			startRef.Format(time.RFC3339), endRef.Format(time.RFC3339))
	}
	return out, nil
}

func extractCyclic(s model.Series, startRef time.Time, count int) model.Series {
	k := nearestIndex(s.Times, startRef)
	n := s.Len()

	out := model.Series{
		Times:  make([]time.Time, count),
		Values: make([]float64, count),
	}
	for i := 0; i < count; i++ {
		idx := (k + i) % n
		out.Times[i] = s.Times[idx]
		out.Values[i] = s.Values[idx]
	}
	return out
}

// nearestIndex returns the index of the timestamp closest to target. The
// series is ordered, so a binary search narrows it to two candidates.
func nearestIndex(times []time.Time, target time.Time) int {
	lo, hi := 0, len(times)
	for lo < hi {
		mid := (lo + hi) / 2
		if times[mid].Before(target) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}
	if lo == len(times) {
		return len(times) - 1
	}
	before := math.Abs(target.Sub(times[lo-1]).Seconds())
	after := math.Abs(times[lo].Sub(target).Seconds())
	if before <= after {
		return lo - 1
	}
	return lo
}

// mapToYear substitutes the reference year into a wall-clock timestamp.
// February 29 against a non-leap reference normalizes to March 1.
func mapToYear(t time.Time, year int) time.Time {
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}
