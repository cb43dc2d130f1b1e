// Package export serializes simulation results to CSV and XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
	"github.com/annalea868/adrex-solar-calculation/internal/simulator"
)

const timeLayout = "2006-01-02 15:04"

func header(surfaceNames []string) []string {
	cols := []string{"timestamp"}
	for _, name := range surfaceNames {
		cols = append(cols, "yield_"+name+"_kwh")
	}
	cols = append(cols, "production_kwh")
	for c := model.ConsumptionCategory(0); c < model.NumCategories; c++ {
		cols = append(cols, "consumption_"+c.String()+"_kwh")
	}
	cols = append(cols, "consumption_kwh", "soc_kwh", "grid_kwh")
	for c := model.ConsumptionCategory(0); c < model.NumCategories; c++ {
		cols = append(cols, "self_"+c.String()+"_kwh")
	}
	return cols
}

func rowRecord(row simulator.Row) []string {
	rec := []string{row.Time.Format(timeLayout)}
	for _, v := range row.SurfaceYieldKWh {
		rec = append(rec, formatKWh(v))
	}
	rec = append(rec, formatKWh(row.ProductionKWh))
	for c := model.ConsumptionCategory(0); c < model.NumCategories; c++ {
		rec = append(rec, formatKWh(row.Consumption[c]))
	}
	rec = append(rec, formatKWh(row.ConsumptionKWh), formatKWh(row.SoCBeforeKWh), formatKWh(row.GridKWh))
	for c := model.ConsumptionCategory(0); c < model.NumCategories; c++ {
		rec = append(rec, formatKWh(row.Self[c]))
	}
	return rec
}

func formatKWh(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteCSV streams the interval ledger as CSV.
func WriteCSV(w io.Writer, res *simulator.Result, surfaceNames []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(surfaceNames)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range res.Rows {
		if err := cw.Write(rowRecord(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the ledger plus a summary sheet.
func WriteXLSX(path string, res *simulator.Result, surfaceNames []string) error {
	f := excelize.NewFile()
	defer f.Close()

	ledgerSheet := "ledger"
	summarySheet := "summary"
	f.SetSheetName(f.GetSheetName(0), ledgerSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	for j, name := range header(surfaceNames) {
		cell, _ := excelize.CoordinatesToCellName(j+1, 1)
		if err := f.SetCellValue(ledgerSheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for i, row := range res.Rows {
		values := ledgerValues(row)
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(ledgerSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i, err)
			}
		}
	}

	writeSummary(f, summarySheet, res, surfaceNames)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func ledgerValues(row simulator.Row) []interface{} {
	values := []interface{}{row.Time.Format(timeLayout)}
	for _, v := range row.SurfaceYieldKWh {
		values = append(values, v)
	}
	values = append(values, row.ProductionKWh)
	for c := model.ConsumptionCategory(0); c < model.NumCategories; c++ {
		values = append(values, row.Consumption[c])
	}
	values = append(values, row.ConsumptionKWh, row.SoCBeforeKWh, row.GridKWh)
	for c := model.ConsumptionCategory(0); c < model.NumCategories; c++ {
		values = append(values, row.Self[c])
	}
	return values
}

func writeSummary(f *excelize.File, sheet string, res *simulator.Result, surfaceNames []string) {
	s := res.Summary
	rows := [][]interface{}{
		{"Generated", time.Now().UTC().Format(time.RFC3339)},
		{"Intervals", s.Intervals},
		{"Production (kWh)", s.ProductionKWh},
		{"Consumption (kWh)", s.ConsumptionKWh.Sum()},
		{"Feed-in (kWh)", s.FeedInKWh},
		{"Import (kWh)", s.ImportKWh},
		{"Self-consumption rate", s.SelfConsumptionRate},
		{"Autarky rate", s.TotalAutarkyRate},
		{"Battery cycles", s.BatteryCycles},
	}
	for c := model.ConsumptionCategory(0); c < model.NumCategories; c++ {
		rows = append(rows,
			[]interface{}{fmt.Sprintf("Consumption %s (kWh)", c), s.ConsumptionKWh[c]},
			[]interface{}{fmt.Sprintf("Self-consumption %s (kWh)", c), s.SelfKWh[c]},
			[]interface{}{fmt.Sprintf("Autarky %s", c), s.AutarkyRates[c]},
		)
	}
	for i, name := range surfaceNames {
		rows = append(rows, []interface{}{fmt.Sprintf("Share %s", name), res.SurfaceShares[i]})
	}

	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
}
