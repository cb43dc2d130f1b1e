// Package config loads simulation scenarios from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

// Scenario is one simulation run described as a YAML document.
type Scenario struct {
	Location struct {
		Latitude  float64 `yaml:"latitude"`
		Longitude float64 `yaml:"longitude"`
	} `yaml:"location"`

	ReferenceYear int `yaml:"reference_year"`

	Window struct {
		Start time.Time `yaml:"start"`
		End   time.Time `yaml:"end"`
	} `yaml:"window"`

	Surfaces []SurfaceConfig `yaml:"surfaces"`

	Battery *BatteryConfig `yaml:"battery"`

	Consumption ConsumptionConfig `yaml:"consumption"`

	Data DataConfig `yaml:"data"`
}

type SurfaceConfig struct {
	Name         string  `yaml:"name"`
	TiltDeg      float64 `yaml:"tilt_deg"`
	AzimuthDeg   float64 `yaml:"azimuth_deg"`
	PeakPowerKWp float64 `yaml:"peak_power_kwp"`
	Efficiency   float64 `yaml:"efficiency"`
}

type BatteryConfig struct {
	CapacityKWh   float64 `yaml:"capacity_kwh"`
	Efficiency    float64 `yaml:"efficiency"`
	InitialSoCKWh float64 `yaml:"initial_soc_kwh"`
}

// ConsumptionConfig holds annual targets; zero disables a category.
type ConsumptionConfig struct {
	HouseholdKWh float64 `yaml:"household_kwh"`
	ECarKmYear   float64 `yaml:"ecar_km_year"`
	HeatPumpKWh  float64 `yaml:"heatpump_kwh"`
}

// DataConfig points at the local input files.
type DataConfig struct {
	GHICacheDir      string `yaml:"ghi_cache_dir"`
	HouseholdProfile string `yaml:"household_profile"`
	HeatPumpProfile  string `yaml:"heatpump_profile"`
	ECarProfile      string `yaml:"ecar_profile"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate delegates to the model validators and checks scenario-level
// requirements.
func (s *Scenario) Validate() error {
	if err := s.ModelLocation().Validate(); err != nil {
		return err
	}
	if len(s.Surfaces) == 0 {
		return &model.ValidationError{Param: "surfaces", Reason: "at least one surface required"}
	}
	for _, sc := range s.Surfaces {
		if err := sc.Model().Validate(); err != nil {
			return fmt.Errorf("surface %q: %w", sc.Name, err)
		}
	}
	if err := s.ModelWindow().Validate(); err != nil {
		return err
	}
	if s.Battery != nil {
		if err := s.Battery.Spec().Validate(); err != nil {
			return err
		}
	}
	if s.Consumption.HouseholdKWh < 0 {
		return &model.ValidationError{Param: "household_kwh", Reason: fmt.Sprintf("must not be negative, got %.1f", s.Consumption.HouseholdKWh)}
	}
	if s.Consumption.ECarKmYear < 0 {
		return &model.ValidationError{Param: "ecar_km_year", Reason: fmt.Sprintf("must not be negative, got %.1f", s.Consumption.ECarKmYear)}
	}
	if s.Consumption.HeatPumpKWh < 0 {
		return &model.ValidationError{Param: "heatpump_kwh", Reason: fmt.Sprintf("must not be negative, got %.1f", s.Consumption.HeatPumpKWh)}
	}
	if s.ReferenceYear <= 0 {
		return &model.ValidationError{Param: "reference_year", Reason: "required"}
	}
	if s.Data.GHICacheDir == "" {
		return &model.ValidationError{Param: "ghi_cache_dir", Reason: "required"}
	}
	return nil
}

func (s *Scenario) ModelLocation() model.Location {
	return model.Location{LatitudeDeg: s.Location.Latitude, LongitudeDeg: s.Location.Longitude}
}

func (s *Scenario) ModelWindow() model.Window {
	return model.Window{Start: s.Window.Start, End: s.Window.End}
}

func (c SurfaceConfig) Model() model.RoofSurface {
	return model.RoofSurface{
		Name:         c.Name,
		TiltDeg:      c.TiltDeg,
		AzimuthDeg:   c.AzimuthDeg,
		PeakPowerKWp: c.PeakPowerKWp,
		Efficiency:   c.Efficiency,
	}
}

func (b BatteryConfig) Spec() model.BatterySpec {
	return model.BatterySpec{CapacityKWh: b.CapacityKWh, RoundTripEfficiency: b.Efficiency}
}
