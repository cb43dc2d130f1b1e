package simulator

import (
	"fmt"
	"time"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
	"github.com/annalea868/adrex-solar-calculation/internal/profile"
	"github.com/annalea868/adrex-solar-calculation/internal/solar"
	"github.com/annalea868/adrex-solar-calculation/internal/timeseries"
)

// Input bundles everything one simulation run needs. The GHI series is the
// raw hourly measurement for the reference year; consumption shapes arrive
// already scaled to their annual targets.
type Input struct {
	Location      model.Location
	Surfaces      []model.RoofSurface
	Window        model.Window
	ReferenceYear int
	GHI           model.Series

	// Battery is nil when the scenario has no storage.
	Battery       *model.BatterySpec
	InitialSoCKWh float64

	// Consumption holds one reference-year shape per category; an empty
	// shape means the category is not present in the scenario.
	Consumption [model.NumCategories]profile.Shape

	// Attributor defaults to Proportional when nil.
	Attributor Attributor
	Ceilings   AutarkyCeilings
}

// Row is one 15-minute ledger entry.
type Row struct {
	Time time.Time

	// Per-surface plane-of-array irradiance (W/m²) and yield (kWh), in
	// Input.Surfaces order.
	SurfaceIrradiance []float64
	SurfaceYieldKWh   []float64

	ProductionKWh  float64
	Consumption    CategoryEnergy
	ConsumptionKWh float64

	SoCBeforeKWh float64
	GridKWh      float64 // positive = feed-in, negative = import
	Self         CategoryEnergy
}

// Summary holds run-level results.
type Summary struct {
	Intervals int

	ProductionKWh  float64
	ConsumptionKWh CategoryEnergy
	SelfKWh        CategoryEnergy
	FeedInKWh      float64
	ImportKWh      float64

	SelfConsumptionRate float64
	AutarkyRates        CategoryEnergy
	TotalAutarkyRate    float64

	BatteryCycles float64
}

// Result is the full outcome of a run.
type Result struct {
	Rows    []Row
	Summary Summary

	// SurfaceShares is each surface's fraction of total yield.
	SurfaceShares []float64

	// Align reports consumption intervals that needed clamping or
	// defaulting during calendar alignment, summed over all categories.
	Align profile.AlignStats
}

// Run executes the full pipeline: validate, project irradiance onto every
// surface, resample to 15 minutes, extract the requested window, align
// consumption, simulate the battery and attribute self-consumption.
func Run(in Input) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	attributor := in.Attributor
	if attributor == nil {
		attributor = Proportional{}
	}

	hourly := timeseries.Normalize(in.GHI)

	// Per-surface POA at 15 minutes, cut to the window.
	var times []time.Time
	irradiance := make([][]float64, len(in.Surfaces))
	yields := make([][]float64, len(in.Surfaces))
	for i, surf := range in.Surfaces {
		poa := solar.ProjectSeries(hourly, in.Location, surf).Total()
		quarter := timeseries.UpsampleQuarterHour(poa)
		windowed, err := timeseries.ExtractWindow(quarter, in.Window, in.ReferenceYear)
		if err != nil {
			return nil, fmt.Errorf("surface %q: %w", surf.Name, err)
		}
		if times == nil {
			times = windowed.Times
		}
		irradiance[i] = windowed.Values
		yields[i] = SurfaceProduction(windowed.Values, surf)
	}
	production := AggregateProduction(yields)
	shares := SurfaceShares(yields)

	// Consumption per category on the window's timestamps.
	n := len(times)
	var align profile.AlignStats
	var consumption [model.NumCategories][]float64
	for c := range in.Consumption {
		if len(in.Consumption[c].Values) == 0 {
			consumption[c] = profile.ZeroSeries(n)
			continue
		}
		values, stats := profile.Align(in.Consumption[c], times)
		consumption[c] = values
		align.Add(stats)
	}

	var battery *Battery
	if in.Battery != nil {
		battery = NewBattery(*in.Battery, in.InitialSoCKWh)
	}

	rows := make([]Row, n)
	var totals Totals
	for i := 0; i < n; i++ {
		var cons CategoryEnergy
		for c := range cons {
			cons[c] = consumption[c][i]
		}
		consTotal := cons.Sum()

		var socBefore, grid float64
		if battery != nil {
			step := battery.Step(production[i], consTotal)
			socBefore = step.SoCBeforeKWh
			grid = step.GridKWh
		} else {
			grid = production[i] - consTotal
		}

		self := attributor.Attribute(grid, cons)
		totals.Accumulate(production[i], grid, cons, self)

		surfIrr := make([]float64, len(in.Surfaces))
		surfYield := make([]float64, len(in.Surfaces))
		for s := range in.Surfaces {
			surfIrr[s] = irradiance[s][i]
			surfYield[s] = yields[s][i]
		}
		rows[i] = Row{
			Time:              times[i],
			SurfaceIrradiance: surfIrr,
			SurfaceYieldKWh:   surfYield,
			ProductionKWh:     production[i],
			Consumption:       cons,
			ConsumptionKWh:    consTotal,
			SoCBeforeKWh:      socBefore,
			GridKWh:           grid,
			Self:              self,
		}
	}

	summary := Summary{
		Intervals:           n,
		ProductionKWh:       totals.ProductionKWh,
		ConsumptionKWh:      totals.ConsumptionKWh,
		SelfKWh:             totals.SelfKWh,
		FeedInKWh:           totals.FeedInKWh,
		ImportKWh:           totals.ImportKWh,
		SelfConsumptionRate: totals.SelfConsumptionRate(),
		TotalAutarkyRate:    totals.TotalAutarkyRate(in.Ceilings),
	}
	for c := model.ConsumptionCategory(0); c < model.NumCategories; c++ {
		summary.AutarkyRates[c] = totals.AutarkyRate(c, in.Ceilings)
	}
	if battery != nil {
		summary.BatteryCycles = battery.Cycles()
	}

	return &Result{Rows: rows, Summary: summary, SurfaceShares: shares, Align: align}, nil
}

func validate(in Input) error {
	if err := in.Location.Validate(); err != nil {
		return err
	}
	if len(in.Surfaces) == 0 {
		return &model.ValidationError{Param: "surfaces", Reason: "at least one surface required"}
	}
	for _, s := range in.Surfaces {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("surface %q: %w", s.Name, err)
		}
	}
	if err := in.Window.Validate(); err != nil {
		return err
	}
	if in.Battery != nil {
		if err := in.Battery.Validate(); err != nil {
			return err
		}
	}
	if len(in.GHI.Times) == 0 {
		return &model.ValidationError{Param: "ghi", Reason: "empty irradiance series"}
	}
	return nil
}
