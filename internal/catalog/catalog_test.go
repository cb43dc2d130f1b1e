package catalog

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseEfficiency(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"95", 0.95},
		{"0.95", 0.95},
		{"ca. 95%", 0.95},
		{"75-80", 0.78},
		{"75-80 %", 0.78},
		{"unbekannt", 0.90},
		{"", 0.90},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, ParseEfficiency(tc.text), 1e-9, "text %q", tc.text)
	}
}

func writeBatteryFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Speicherhersteller / Typ", "Netto Kapazität", "Effizienz (grob)", "Speicher-Typ"},
		{"Acme Home 10", 10.2, "95", "DC"},
		{"Budget Cell", 5.0, "75-80", "AC"},
		{"NoName", 7.5, "k.A.", "AC"},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "batteries.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestBatterySystems(t *testing.T) {
	systems, err := BatterySystems(writeBatteryFixture(t))
	require.NoError(t, err)
	require.Len(t, systems, 3)

	assert.Equal(t, "Acme Home 10", systems[0].Name)
	assert.InDelta(t, 10.2, systems[0].NetCapacityKWh, 1e-9)
	assert.InDelta(t, 0.95, systems[0].Efficiency, 1e-9)
	assert.Equal(t, "DC", systems[0].Coupling)

	assert.InDelta(t, 0.78, systems[1].Efficiency, 1e-9)
	assert.InDelta(t, 0.90, systems[2].Efficiency, 1e-9)

	spec := systems[0].Spec()
	assert.InDelta(t, 10.2, spec.CapacityKWh, 1e-9)
	require.NoError(t, spec.Validate())
}

func TestHouseholdShape(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Datum"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "SLP-HB [kWh]"))
	// two lead-in rows without data
	require.NoError(t, f.SetCellValue(sheet, "A2", "Einheit"))
	require.NoError(t, f.SetCellValue(sheet, "A3", ""))
	for i := 0; i < 4; i++ {
		row := i + 4
		ts := fmt.Sprintf("2015-01-01 %02d:%02d:00", i/4, (i%4)*15)
		require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ts))
		require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("B%d", row), 0.05*float64(i+1)))
	}
	path := filepath.Join(t.TempDir(), "household.xlsx")
	require.NoError(t, f.SaveAs(path))

	shape, err := HouseholdShape(path)
	require.NoError(t, err)
	require.Len(t, shape.Values, 4)
	assert.InDelta(t, 0.05, shape.Values[0], 1e-9)
	assert.Equal(t, 2015, shape.Times[0].Year())
	assert.Equal(t, 15, shape.Times[1].Minute())
}

func TestHouseholdShape_MissingColumn(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue(f.GetSheetName(0), "A1", "Datum"))
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := HouseholdShape(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SLP-HB")
}

func TestHeatPumpShape(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Verbrauch_Last"))
	for i := 0; i < 6; i++ {
		require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), float64(i)*0.1))
	}
	path := filepath.Join(t.TempDir(), "heatpump.xlsx")
	require.NoError(t, f.SaveAs(path))

	shape, err := HeatPumpShape(path, 2015)
	require.NoError(t, err)
	require.Len(t, shape.Values, 6)
	// sequential 15-minute timestamps from January 1
	assert.Equal(t, 2015, shape.Times[0].Year())
	assert.Equal(t, 15, shape.Times[1].Minute())
	assert.Equal(t, 30, shape.Times[2].Minute())
	assert.InDelta(t, 0.5, shape.Values[5], 1e-9)
}

func TestECarArchetypes(t *testing.T) {
	f := excelize.NewFile()
	weekdaySheet := f.GetSheetName(0)
	_, err := f.NewSheet("Wochenende")
	require.NoError(t, err)

	for _, sheet := range []string{weekdaySheet, "Wochenende"} {
		// rows 1-5 hold headers the parser must skip
		require.NoError(t, f.SetCellValue(sheet, "B3", "kWh"))
		for i := 0; i < 144; i++ {
			v := 0.01
			if sheet != weekdaySheet {
				v = 0.02
			}
			require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("B%d", i+6), v))
		}
	}
	path := filepath.Join(t.TempDir(), "ecar.xlsx")
	require.NoError(t, f.SaveAs(path))

	weekday, weekend, err := ECarArchetypes(path)
	require.NoError(t, err)
	require.Len(t, weekday, 144)
	require.Len(t, weekend, 144)
	assert.InDelta(t, 0.01, weekday[0], 1e-9)
	assert.InDelta(t, 0.02, weekend[0], 1e-9)
}
