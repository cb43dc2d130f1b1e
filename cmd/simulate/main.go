// Command simulate runs one scenario end to end and writes the interval
// ledger.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/annalea868/adrex-solar-calculation/internal/catalog"
	"github.com/annalea868/adrex-solar-calculation/internal/config"
	"github.com/annalea868/adrex-solar-calculation/internal/export"
	"github.com/annalea868/adrex-solar-calculation/internal/model"
	"github.com/annalea868/adrex-solar-calculation/internal/profile"
	"github.com/annalea868/adrex-solar-calculation/internal/provider"
	"github.com/annalea868/adrex-solar-calculation/internal/simulator"
)

func main() {
	var (
		scenarioPath string
		csvPath      string
		xlsxPath     string
	)
	pflag.StringVarP(&scenarioPath, "scenario", "s", "scenario.yaml", "scenario YAML file")
	pflag.StringVarP(&csvPath, "csv", "o", "", "write the interval ledger as CSV")
	pflag.StringVarP(&xlsxPath, "xlsx", "x", "", "write ledger and summary as XLSX")
	pflag.Parse()

	scenario, err := config.Load(scenarioPath)
	if err != nil {
		log.Fatalf("Loading scenario: %v", err)
	}

	input, meta, err := buildInput(scenario)
	if err != nil {
		log.Fatalf("Preparing simulation: %v", err)
	}
	log.Printf("Irradiance: %s", meta)

	res, err := simulator.Run(input)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
	if res.Align.Clamped > 0 || res.Align.Missing > 0 {
		log.Printf("Profile alignment: %d clamped, %d missing intervals", res.Align.Clamped, res.Align.Missing)
	}

	printSummary(res, input.Surfaces)

	names := surfaceNames(input.Surfaces)
	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			log.Fatalf("Creating %s: %v", csvPath, err)
		}
		if err := export.WriteCSV(f, res, names); err != nil {
			log.Fatalf("Writing CSV: %v", err)
		}
		f.Close()
		log.Printf("Ledger written to %s", csvPath)
	}
	if xlsxPath != "" {
		if err := export.WriteXLSX(xlsxPath, res, names); err != nil {
			log.Fatalf("Writing XLSX: %v", err)
		}
		log.Printf("Workbook written to %s", xlsxPath)
	}
}

// buildInput assembles the full simulation input from a scenario: irradiance
// from the grid cache and consumption shapes from the profile catalogs.
func buildInput(s *config.Scenario) (simulator.Input, provider.CellMeta, error) {
	cache := provider.NewGridCache(s.Data.GHICacheDir)
	ghi, meta, err := cache.HourlyGHI(s.ModelLocation(), s.ReferenceYear)
	if err != nil {
		if errors.Is(err, provider.ErrNoData) {
			return simulator.Input{}, meta, fmt.Errorf("irradiance cache has no data for this location, run the grid downloader first: %w", err)
		}
		return simulator.Input{}, meta, err
	}

	surfaces := make([]model.RoofSurface, len(s.Surfaces))
	for i, sc := range s.Surfaces {
		surfaces[i] = sc.Model()
	}

	input := simulator.Input{
		Location:      s.ModelLocation(),
		Surfaces:      surfaces,
		Window:        s.ModelWindow(),
		ReferenceYear: s.ReferenceYear,
		GHI:           ghi,
		Ceilings:      simulator.DefaultAutarkyCeilings(),
	}
	if s.Battery != nil {
		spec := s.Battery.Spec()
		input.Battery = &spec
		input.InitialSoCKWh = s.Battery.InitialSoCKWh
	}

	if s.Consumption.HouseholdKWh > 0 {
		shape, err := householdShape(s)
		if err != nil {
			return simulator.Input{}, meta, err
		}
		input.Consumption[model.Household] = shape.Scale(s.Consumption.HouseholdKWh)
	}
	if s.Consumption.HeatPumpKWh > 0 {
		shape, err := catalog.HeatPumpShape(s.Data.HeatPumpProfile, s.ReferenceYear)
		if err != nil {
			return simulator.Input{}, meta, fmt.Errorf("heat pump profile: %w", err)
		}
		input.Consumption[model.HeatPump] = shape.Scale(s.Consumption.HeatPumpKWh)
	}
	if s.Consumption.ECarKmYear > 0 {
		weekday, weekend, err := catalog.ECarArchetypes(s.Data.ECarProfile)
		if err != nil {
			return simulator.Input{}, meta, fmt.Errorf("e-car profile: %w", err)
		}
		shape, err := profile.ECarYearShape(weekday, weekend, s.ReferenceYear)
		if err != nil {
			return simulator.Input{}, meta, fmt.Errorf("e-car profile: %w", err)
		}
		input.Consumption[model.ECar] = shape.Scale(profile.ECarAnnualKWh(s.Consumption.ECarKmYear))
	}

	return input, meta, nil
}

// householdShape falls back to a banded synthetic shape when no profile file
// is configured.
func householdShape(s *config.Scenario) (profile.Shape, error) {
	if s.Data.HouseholdProfile != "" {
		shape, err := catalog.HouseholdShape(s.Data.HouseholdProfile)
		if err != nil {
			return profile.Shape{}, fmt.Errorf("household profile: %w", err)
		}
		return shape, nil
	}
	log.Printf("No household profile configured, using synthetic day/night shape")
	return syntheticShape(s.ReferenceYear, s.Consumption.HouseholdKWh), nil
}

func syntheticShape(refYear int, annualKWh float64) profile.Shape {
	start := time.Date(refYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	values := profile.Synthetic(365*96, annualKWh)
	shape := profile.Shape{Times: make([]time.Time, len(values)), Values: values}
	for i := range values {
		shape.Times[i] = start.Add(time.Duration(i) * model.IntervalStep)
	}
	return shape.Scale(annualKWh)
}

func surfaceNames(surfaces []model.RoofSurface) []string {
	names := make([]string, len(surfaces))
	for i, s := range surfaces {
		names[i] = s.Name
	}
	return names
}

func printSummary(res *simulator.Result, surfaces []model.RoofSurface) {
	s := res.Summary
	fmt.Println()
	fmt.Println("Simulation Summary")
	fmt.Printf("  Intervals:        %d (%.1f days)\n", s.Intervals, float64(s.Intervals)/96)
	fmt.Printf("  Production:       %9.1f kWh\n", s.ProductionKWh)
	for i, surf := range surfaces {
		fmt.Printf("    %-14s  %8.1f%% of yield\n", surf.Name+":", res.SurfaceShares[i]*100)
	}
	fmt.Printf("  Consumption:      %9.1f kWh\n", s.ConsumptionKWh.Sum())
	for c := model.ConsumptionCategory(0); c < model.NumCategories; c++ {
		if s.ConsumptionKWh[c] == 0 {
			continue
		}
		fmt.Printf("    %-14s  %8.1f kWh (autarky %.1f%%)\n", c.String()+":", s.ConsumptionKWh[c], s.AutarkyRates[c]*100)
	}
	fmt.Printf("  Feed-in:          %9.1f kWh\n", s.FeedInKWh)
	fmt.Printf("  Grid import:      %9.1f kWh\n", s.ImportKWh)
	fmt.Printf("  Self-consumption: %9.1f%%\n", s.SelfConsumptionRate*100)
	fmt.Printf("  Autarky:          %9.1f%%\n", s.TotalAutarkyRate*100)
	if s.BatteryCycles > 0 {
		fmt.Printf("  Battery cycles:   %9.2f\n", s.BatteryCycles)
	}
	fmt.Println()
}
