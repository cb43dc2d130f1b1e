package model

import (
	"fmt"
	"time"
)

// Location identifies a point on the irradiance grid.
type Location struct {
	LatitudeDeg  float64
	LongitudeDeg float64
}

func (l Location) Validate() error {
	if l.LatitudeDeg < -90 || l.LatitudeDeg > 90 {
		return &ValidationError{Param: "latitude", Reason: fmt.Sprintf("must be within [-90, 90], got %.4f", l.LatitudeDeg)}
	}
	if l.LongitudeDeg < -180 || l.LongitudeDeg > 180 {
		return &ValidationError{Param: "longitude", Reason: fmt.Sprintf("must be within [-180, 180], got %.4f", l.LongitudeDeg)}
	}
	return nil
}

// RoofSurface describes one PV surface for a simulation run.
//
// AzimuthDeg uses the compass convention: 0° = North, increasing clockwise
// (90° = East, 180° = South, 270° = West). Solar azimuth uses the same
// convention, so no conversion happens anywhere downstream.
type RoofSurface struct {
	Name         string
	TiltDeg      float64
	AzimuthDeg   float64
	PeakPowerKWp float64
	Efficiency   float64
}

func (s RoofSurface) Validate() error {
	if s.TiltDeg < 0 || s.TiltDeg > 90 {
		return &ValidationError{Param: "tilt", Reason: fmt.Sprintf("must be within [0, 90], got %.1f", s.TiltDeg)}
	}
	if s.PeakPowerKWp <= 0 {
		return &ValidationError{Param: "peak_power_kwp", Reason: fmt.Sprintf("must be positive, got %.3f", s.PeakPowerKWp)}
	}
	if s.Efficiency <= 0 || s.Efficiency > 1 {
		return &ValidationError{Param: "efficiency", Reason: fmt.Sprintf("must be within (0, 1], got %.3f", s.Efficiency)}
	}
	return nil
}

// BatterySpec holds the battery parameters, immutable per run.
type BatterySpec struct {
	CapacityKWh         float64
	RoundTripEfficiency float64
}

func (b BatterySpec) Validate() error {
	if b.CapacityKWh <= 0 {
		return &ValidationError{Param: "battery_capacity_kwh", Reason: fmt.Sprintf("must be positive, got %.3f", b.CapacityKWh)}
	}
	if b.RoundTripEfficiency <= 0 || b.RoundTripEfficiency > 1 {
		return &ValidationError{Param: "battery_efficiency", Reason: fmt.Sprintf("must be within (0, 1], got %.3f", b.RoundTripEfficiency)}
	}
	return nil
}

// ConsumptionCategory is one of the competing consumption streams.
type ConsumptionCategory int

const (
	Household ConsumptionCategory = iota
	ECar
	HeatPump
	NumCategories
)

func (c ConsumptionCategory) String() string {
	switch c {
	case Household:
		return "household"
	case ECar:
		return "e-car"
	case HeatPump:
		return "heat-pump"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Window is a half-open observation window [Start, End) in wall-clock time.
// The requested year is irrelevant for data lookup; timestamps are remapped
// onto the reference year before extraction.
type Window struct {
	Start time.Time
	End   time.Time
}

// IntervalStep is the simulation resolution.
const IntervalStep = 15 * time.Minute

// Intervals returns the exact number of 15-minute intervals the window spans.
func (w Window) Intervals() int {
	return int(w.End.Sub(w.Start) / IntervalStep)
}

func (w Window) Validate() error {
	if !w.End.After(w.Start) {
		return &ValidationError{Param: "window", Reason: "end must be after start"}
	}
	if w.Intervals() <= 0 {
		return &ValidationError{Param: "window", Reason: "must span at least one 15-minute interval"}
	}
	return nil
}
