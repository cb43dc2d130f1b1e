// Package catalog reads the spreadsheet catalogs that ship alongside the
// simulator: storage systems and the canonical load-profile shapes.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
	"github.com/annalea868/adrex-solar-calculation/internal/profile"
)

// BatterySystem is one storage product from the vendor sheet.
type BatterySystem struct {
	Name           string
	NetCapacityKWh float64
	Efficiency     float64
	Coupling       string
}

// Spec converts a catalog entry into simulation parameters.
func (b BatterySystem) Spec() model.BatterySpec {
	return model.BatterySpec{CapacityKWh: b.NetCapacityKWh, RoundTripEfficiency: b.Efficiency}
}

// ParseEfficiency maps the sheet's rough efficiency text to a fraction.
// "95" style entries mean 0.95, the "75-80" range maps to its midpoint,
// anything else falls back to 0.90.
func ParseEfficiency(text string) float64 {
	text = strings.TrimSpace(text)
	switch {
	case strings.Contains(text, "95"):
		return 0.95
	case strings.Contains(text, "75-80"):
		return 0.78
	default:
		return 0.90
	}
}

// BatterySystems reads the storage sheet: one header row, then columns
// name / net capacity (kWh) / efficiency text / coupling type.
func BatterySystems(path string) ([]BatterySystem, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open battery catalog: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read battery catalog: %w", err)
	}

	var systems []BatterySystem
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		capacity, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("battery %q: bad capacity %q: %w", name, row[1], err)
		}
		systems = append(systems, BatterySystem{
			Name:           name,
			NetCapacityKWh: capacity,
			Efficiency:     ParseEfficiency(row[2]),
			Coupling:       strings.TrimSpace(row[3]),
		})
	}
	if len(systems) == 0 {
		return nil, fmt.Errorf("battery catalog %s: no systems found", path)
	}
	return systems, nil
}

// householdDateLayouts covers the timestamp formats seen in the standard
// load profile sheet.
var householdDateLayouts = []string{
	"2006-01-02 15:04:05",
	"02.01.2006 15:04",
	"2006-01-02T15:04:05Z",
	"01-02-06 15:04",
}

// HouseholdShape reads the standard household load profile: a Datum column
// and an "SLP-HB [kWh]" column, with two lead-in rows below the header that
// carry no data.
func HouseholdShape(path string) (profile.Shape, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return profile.Shape{}, fmt.Errorf("open household profile: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return profile.Shape{}, fmt.Errorf("read household profile: %w", err)
	}
	if len(rows) == 0 {
		return profile.Shape{}, fmt.Errorf("household profile %s: empty sheet", path)
	}

	dateCol, valueCol := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case "Datum":
			dateCol = i
		case "SLP-HB [kWh]":
			valueCol = i
		}
	}
	if dateCol < 0 || valueCol < 0 {
		return profile.Shape{}, fmt.Errorf("household profile %s: Datum / SLP-HB [kWh] columns not found", path)
	}

	var shape profile.Shape
	for _, row := range rows[3:] { // header plus two lead-in rows
		if len(row) <= dateCol || len(row) <= valueCol {
			continue
		}
		ts, err := parseProfileDate(row[dateCol])
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[valueCol]), 64)
		if err != nil {
			continue
		}
		shape.Times = append(shape.Times, ts)
		shape.Values = append(shape.Values, v)
	}
	if len(shape.Times) == 0 {
		return profile.Shape{}, fmt.Errorf("household profile %s: no data rows", path)
	}
	return shape, nil
}

// HeatPumpShape reads the heat pump reference profile: a single
// Verbrauch_Last column of 15-minute values starting January 1 of refYear.
func HeatPumpShape(path string, refYear int) (profile.Shape, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return profile.Shape{}, fmt.Errorf("open heat pump profile: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return profile.Shape{}, fmt.Errorf("read heat pump profile: %w", err)
	}
	if len(rows) == 0 {
		return profile.Shape{}, fmt.Errorf("heat pump profile %s: empty sheet", path)
	}

	valueCol := -1
	for i, name := range rows[0] {
		if strings.TrimSpace(name) == "Verbrauch_Last" {
			valueCol = i
		}
	}
	if valueCol < 0 {
		return profile.Shape{}, fmt.Errorf("heat pump profile %s: Verbrauch_Last column not found", path)
	}

	start := time.Date(refYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	var shape profile.Shape
	for _, row := range rows[1:] {
		if len(row) <= valueCol {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[valueCol]), 64)
		if err != nil {
			continue
		}
		shape.Times = append(shape.Times, start.Add(time.Duration(len(shape.Times))*model.IntervalStep))
		shape.Values = append(shape.Values, v)
	}
	if len(shape.Times) == 0 {
		return profile.Shape{}, fmt.Errorf("heat pump profile %s: no data rows", path)
	}
	return shape, nil
}

// ECarArchetypes reads the charging archetype workbook: sheet 0 holds the
// weekday shape, sheet 1 the weekend shape, each as 10-minute values in
// column B starting at row 6.
func ECarArchetypes(path string) (weekday, weekend []float64, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open e-car archetypes: %w", err)
	}
	defer f.Close()

	weekday, err = archetypeColumn(f, f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("weekday sheet: %w", err)
	}
	weekend, err = archetypeColumn(f, f.GetSheetName(1))
	if err != nil {
		return nil, nil, fmt.Errorf("weekend sheet: %w", err)
	}
	return weekday, weekend, nil
}

func archetypeColumn(f *excelize.File, sheet string) ([]float64, error) {
	if sheet == "" {
		return nil, fmt.Errorf("sheet missing")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	var values []float64
	for i, row := range rows {
		if i < 5 || len(row) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("sheet %s: no numeric values in column B", sheet)
	}
	return values, nil
}

func parseProfileDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range householdDateLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}
