package profile

import (
	"fmt"
	"time"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

const (
	samplesPerDay10Min = 144
	samplesPerDay15Min = 96
)

// ResampleDay converts a single-day profile from 10-minute to 15-minute
// resolution. Every 30-minute block covers three source samples and two
// output samples; the middle source sample is split evenly between them, so
// the daily energy total is preserved exactly.
func ResampleDay(day []float64) ([]float64, error) {
	if len(day) != samplesPerDay10Min {
		return nil, fmt.Errorf("resample day: want %d samples, got %d", samplesPerDay10Min, len(day))
	}
	out := make([]float64, samplesPerDay15Min)
	for block := 0; block < samplesPerDay10Min/3; block++ {
		a, b, c := day[block*3], day[block*3+1], day[block*3+2]
		out[block*2] = a + b/2
		out[block*2+1] = b/2 + c
	}
	return out, nil
}

// ECarYearShape replicates weekday and weekend daily charging archetypes over
// a full reference year at 15-minute resolution. Saturdays and Sundays use
// the weekend archetype, all other days the weekday one.
func ECarYearShape(weekday, weekend []float64, refYear int) (Shape, error) {
	wd, err := ResampleDay(weekday)
	if err != nil {
		return Shape{}, fmt.Errorf("weekday archetype: %w", err)
	}
	we, err := ResampleDay(weekend)
	if err != nil {
		return Shape{}, fmt.Errorf("weekend archetype: %w", err)
	}

	start := time.Date(refYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	days := int(end.Sub(start).Hours() / 24)

	shape := Shape{
		Times:  make([]time.Time, 0, days*samplesPerDay15Min),
		Values: make([]float64, 0, days*samplesPerDay15Min),
	}
	for d := 0; d < days; d++ {
		dayStart := start.AddDate(0, 0, d)
		daily := wd
		if wday := dayStart.Weekday(); wday == time.Saturday || wday == time.Sunday {
			daily = we
		}
		for i, v := range daily {
			shape.Times = append(shape.Times, dayStart.Add(time.Duration(i)*model.IntervalStep))
			shape.Values = append(shape.Values, v)
		}
	}
	return shape, nil
}
