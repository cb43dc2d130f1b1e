// Package provider supplies hourly global horizontal irradiance series from
// a local grid cache.
package provider

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

// ErrNoData signals that the cache holds nothing for the requested cell and
// year. Callers must treat this as a degraded condition; the provider never
// substitutes a neighboring cell.
var ErrNoData = errors.New("no irradiance data for cell")

// Grid geometry of the cached irradiance rasters.
const (
	LatStepDeg = 0.25
	LonStepDeg = 0.50

	MinLatDeg = 47.5
	MaxLatDeg = 55.0
	MinLonDeg = 6.0
	MaxLonDeg = 15.0
)

// CellMeta identifies the snapped grid cell a series was read from.
type CellMeta struct {
	LatDeg float64
	LonDeg float64
	Year   int
}

func (c CellMeta) String() string {
	return fmt.Sprintf("cell %.2f°N %.2f°E year %d", c.LatDeg, c.LonDeg, c.Year)
}

// GHISource yields the hourly GHI series for a location and year.
type GHISource interface {
	HourlyGHI(loc model.Location, year int) (model.Series, CellMeta, error)
}

// GridCache reads pre-downloaded irradiance CSV files from a directory, one
// file per grid cell and year.
type GridCache struct {
	Dir string
}

func NewGridCache(dir string) *GridCache {
	return &GridCache{Dir: dir}
}

// Snap rounds a location to the nearest cell center.
func Snap(loc model.Location) (latDeg, lonDeg float64) {
	latDeg = math.Round(loc.LatitudeDeg/LatStepDeg) * LatStepDeg
	lonDeg = math.Round(loc.LongitudeDeg/LonStepDeg) * LonStepDeg
	return latDeg, lonDeg
}

// HourlyGHI loads the cached series for the cell covering loc. Locations
// outside the covered region are rejected up front; a missing cache file
// maps to ErrNoData wrapped with the snapped cell.
func (g *GridCache) HourlyGHI(loc model.Location, year int) (model.Series, CellMeta, error) {
	if err := loc.Validate(); err != nil {
		return model.Series{}, CellMeta{}, err
	}
	lat, lon := Snap(loc)
	meta := CellMeta{LatDeg: lat, LonDeg: lon, Year: year}

	if lat < MinLatDeg || lat > MaxLatDeg || lon < MinLonDeg || lon > MaxLonDeg {
		return model.Series{}, meta, &model.ValidationError{
			Param:  "location",
			Reason: fmt.Sprintf("%.2f°N %.2f°E outside covered region", lat, lon),
		}
	}

	path := filepath.Join(g.Dir, CellFileName(lat, lon, year))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Series{}, meta, fmt.Errorf("%s: %w", meta, ErrNoData)
		}
		return model.Series{}, meta, fmt.Errorf("open cache %s: %w", path, err)
	}
	defer f.Close()

	s, err := parseGHI(f)
	if err != nil {
		return model.Series{}, meta, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(s.Times) == 0 {
		return model.Series{}, meta, fmt.Errorf("%s: %w", meta, ErrNoData)
	}
	return s, meta, nil
}

// CellFileName returns the cache file name for a snapped cell.
func CellFileName(latDeg, lonDeg float64, year int) string {
	return fmt.Sprintf("ghi_%.2f_%.2f_%d.csv", latDeg, lonDeg, year)
}

// parseGHI reads timestamp,ghi rows. Rows with an unparseable value are
// skipped; a malformed header is an error.
func parseGHI(r io.Reader) (model.Series, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return model.Series{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 || header[0] != "timestamp" || header[1] != "ghi" {
		return model.Series{}, fmt.Errorf("unexpected header %v, want timestamp,ghi", header)
	}

	var s model.Series
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Series{}, fmt.Errorf("read row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, record[0])
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		s.Times = append(s.Times, ts.UTC())
		s.Values = append(s.Values, value)
	}
	return s, nil
}
