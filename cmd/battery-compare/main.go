// Command battery-compare sweeps battery capacities for one scenario and
// prints a sizing comparison table.
package main

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/annalea868/adrex-solar-calculation/internal/config"
	"github.com/annalea868/adrex-solar-calculation/internal/model"
	"github.com/annalea868/adrex-solar-calculation/internal/profile"
	"github.com/annalea868/adrex-solar-calculation/internal/provider"
	"github.com/annalea868/adrex-solar-calculation/internal/simulator"
)

type result struct {
	capacity float64
	summary  simulator.Summary
}

func main() {
	var (
		scenarioPath string
		capsFlag     string
		efficiency   float64
	)
	pflag.StringVarP(&scenarioPath, "scenario", "s", "scenario.yaml", "scenario YAML file")
	pflag.StringVar(&capsFlag, "capacities", "5,7.5,10,12.5,15,20,25,30", "comma-separated battery capacities in kWh")
	pflag.Float64Var(&efficiency, "efficiency", 0.95, "round-trip efficiency for all swept capacities")
	pflag.Parse()

	scenario, err := config.Load(scenarioPath)
	if err != nil {
		log.Fatalf("Loading scenario: %v", err)
	}
	capacities, err := parseCapacities(capsFlag)
	if err != nil {
		log.Fatalf("Invalid capacities %q: %v", capsFlag, err)
	}
	sort.Float64s(capacities)

	cache := provider.NewGridCache(scenario.Data.GHICacheDir)
	ghi, meta, err := cache.HourlyGHI(scenario.ModelLocation(), scenario.ReferenceYear)
	if err != nil {
		log.Fatalf("Loading irradiance: %v", err)
	}
	log.Printf("Irradiance: %s", meta)

	surfaces := make([]model.RoofSurface, len(scenario.Surfaces))
	for i, sc := range scenario.Surfaces {
		surfaces[i] = sc.Model()
	}
	base := simulator.Input{
		Location:      scenario.ModelLocation(),
		Surfaces:      surfaces,
		Window:        scenario.ModelWindow(),
		ReferenceYear: scenario.ReferenceYear,
		GHI:           ghi,
		Ceilings:      simulator.DefaultAutarkyCeilings(),
	}
	if scenario.Consumption.HouseholdKWh > 0 {
		// the sweep compares batteries against a flat-scaled synthetic
		// shape so it runs without the profile workbooks
		base.Consumption[model.Household] = syntheticShape(scenario.ReferenceYear, scenario.Consumption.HouseholdKWh)
	}

	// no-battery baseline for import savings
	baseline, err := simulator.Run(base)
	if err != nil {
		log.Fatalf("Baseline run failed: %v", err)
	}

	results := make([]result, 0, len(capacities))
	for _, capacity := range capacities {
		in := base
		spec := model.BatterySpec{CapacityKWh: capacity, RoundTripEfficiency: efficiency}
		in.Battery = &spec

		res, err := simulator.Run(in)
		if err != nil {
			log.Fatalf("Run with %.1f kWh failed: %v", capacity, err)
		}
		results = append(results, result{capacity: capacity, summary: res.Summary})
	}

	printTable(results, baseline.Summary, efficiency)
}

func printTable(results []result, baseline simulator.Summary, efficiency float64) {
	if len(results) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Battery Size Comparison")
	fmt.Printf("  Round-trip efficiency: %.0f%%\n", efficiency*100)
	fmt.Printf("  Window: %d intervals (%.0f days), baseline import %.1f kWh\n",
		baseline.Intervals, float64(baseline.Intervals)/96, baseline.ImportKWh)
	fmt.Println()

	fmt.Printf(" %8s │ %11s │ %9s │ %6s │ %8s │ %11s │ %8s\n",
		"Capacity", "Grid Import", " Savings ", "Cycles", "Marginal", "Savings/kWh", "Autarky")
	fmt.Printf("──────────┼─────────────┼───────────┼────────┼──────────┼─────────────┼──────────\n")

	for i, r := range results {
		savings := baseline.ImportKWh - r.summary.ImportKWh
		savingsPerKWh := savings / r.capacity

		marginal := "-"
		if i > 0 {
			prev := results[i-1]
			prevSavings := baseline.ImportKWh - prev.summary.ImportKWh
			if dCap := r.capacity - prev.capacity; dCap > 0 {
				marginal = fmt.Sprintf("%.1f", (savings-prevSavings)/dCap)
			}
		}

		fmt.Printf(" %5.1f kWh │ %8.1f kWh │ %6.1f kWh│ %6.1f │ %8s │ %8.1f kWh │ %7.1f%%\n",
			r.capacity,
			r.summary.ImportKWh,
			savings,
			r.summary.BatteryCycles,
			marginal,
			savingsPerKWh,
			r.summary.TotalAutarkyRate*100,
		)
	}
	fmt.Println()
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

func parseCapacities(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	caps := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("capacity must be positive, got %v", v)
		}
		caps = append(caps, v)
	}
	if len(caps) == 0 {
		return nil, fmt.Errorf("no capacities specified")
	}
	return caps, nil
}
