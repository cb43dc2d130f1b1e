package provider

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

func TestSnap(t *testing.T) {
	lat, lon := Snap(model.Location{LatitudeDeg: 52.52, LongitudeDeg: 13.40})
	assert.InDelta(t, 52.50, lat, 1e-9)
	assert.InDelta(t, 13.50, lon, 1e-9)

	lat, lon = Snap(model.Location{LatitudeDeg: 48.13, LongitudeDeg: 11.58})
	assert.InDelta(t, 48.25, lat, 1e-9)
	assert.InDelta(t, 11.50, lon, 1e-9)
}

func TestCellFileName(t *testing.T) {
	assert.Equal(t, "ghi_52.50_13.50_2015.csv", CellFileName(52.50, 13.50, 2015))
}

func writeCell(t *testing.T, dir string, lat, lon float64, year int, body string) {
	t.Helper()
	path := filepath.Join(dir, CellFileName(lat, lon, year))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestGridCache_HourlyGHI(t *testing.T) {
	dir := t.TempDir()
	writeCell(t, dir, 52.50, 13.50, 2015, strings.Join([]string{
		"timestamp,ghi",
		"2015-06-01T10:00:00Z,450.5",
		"2015-06-01T11:00:00Z,520.0",
		"2015-06-01T12:00:00Z,not-a-number",
		"2015-06-01T13:00:00Z,480.25",
	}, "\n"))

	cache := NewGridCache(dir)
	s, meta, err := cache.HourlyGHI(model.Location{LatitudeDeg: 52.52, LongitudeDeg: 13.40}, 2015)

	require.NoError(t, err)
	assert.Equal(t, CellMeta{LatDeg: 52.50, LonDeg: 13.50, Year: 2015}, meta)
	require.Len(t, s.Values, 3)
	assert.InDelta(t, 450.5, s.Values[0], 1e-9)
	assert.Equal(t, time.Date(2015, 6, 1, 10, 0, 0, 0, time.UTC), s.Times[0])
}

func TestGridCache_MissingCellIsErrNoData(t *testing.T) {
	cache := NewGridCache(t.TempDir())
	_, meta, err := cache.HourlyGHI(model.Location{LatitudeDeg: 52.52, LongitudeDeg: 13.40}, 2015)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	// the error names the snapped cell, never a substitute
	assert.Contains(t, err.Error(), "52.50")
	assert.Equal(t, 2015, meta.Year)
}

func TestGridCache_EmptyFileIsErrNoData(t *testing.T) {
	dir := t.TempDir()
	writeCell(t, dir, 52.50, 13.50, 2015, "timestamp,ghi\n")

	cache := NewGridCache(dir)
	_, _, err := cache.HourlyGHI(model.Location{LatitudeDeg: 52.52, LongitudeDeg: 13.40}, 2015)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestGridCache_OutsideRegionRejected(t *testing.T) {
	cache := NewGridCache(t.TempDir())
	_, _, err := cache.HourlyGHI(model.Location{LatitudeDeg: 40.0, LongitudeDeg: 3.0}, 2015)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "location", verr.Param)
}

func TestGridCache_BadHeaderRejected(t *testing.T) {
	dir := t.TempDir()
	writeCell(t, dir, 52.50, 13.50, 2015, "time,value\n2015-06-01T10:00:00Z,450.5\n")

	cache := NewGridCache(dir)
	_, _, err := cache.HourlyGHI(model.Location{LatitudeDeg: 52.52, LongitudeDeg: 13.40}, 2015)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp")
}
