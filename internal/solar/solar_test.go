package solar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

var berlin = model.Location{LatitudeDeg: 52.52, LongitudeDeg: 13.40}

func TestPosition_NoonSummerBerlin(t *testing.T) {
	// Solar noon in Berlin (13.4°E) is around 11:06 UTC. At the June
	// solstice the sun stands at roughly 52.52 - 23.44 = 29.1° zenith.
	noon := time.Date(2023, 6, 21, 11, 6, 0, 0, time.UTC)
	zenith, azimuth := Position(noon, berlin)

	assert.InDelta(t, 29.1, zenith, 1.0)
	// Near solar noon the sun is due south.
	assert.InDelta(t, 180, azimuth, 5.0)
}

func TestPosition_MidnightIsBelowHorizon(t *testing.T) {
	midnight := time.Date(2023, 6, 21, 23, 0, 0, 0, time.UTC)
	zenith, _ := Position(midnight, berlin)
	assert.Greater(t, zenith, 90.0)
}

func TestPosition_MorningSunInEast(t *testing.T) {
	morning := time.Date(2023, 6, 21, 5, 0, 0, 0, time.UTC)
	zenith, azimuth := Position(morning, berlin)
	require.Less(t, zenith, 90.0)
	assert.Greater(t, azimuth, 45.0)
	assert.Less(t, azimuth, 135.0)
}

func TestDecompose_NightAndZeroGHI(t *testing.T) {
	dni, dhi := Decompose(500, 90)
	assert.Zero(t, dni)
	assert.Zero(t, dhi)

	dni, dhi = Decompose(0, 30)
	assert.Zero(t, dni)
	assert.Zero(t, dhi)

	dni, dhi = Decompose(-10, 30)
	assert.Zero(t, dni)
	assert.Zero(t, dhi)
}

func TestDecompose_RoundTrip(t *testing.T) {
	// DHI + DNI·cos(zenith) must reconstruct GHI for daytime inputs.
	cases := []struct {
		ghi    float64
		zenith float64
	}{
		{800, 30},
		{450, 55},
		{120, 75},
		{50, 85},
		{1000, 10},
	}
	for _, tc := range cases {
		dni, dhi := Decompose(tc.ghi, tc.zenith)
		reconstructed := dhi + dni*math.Cos(tc.zenith*math.Pi/180)
		assert.InDelta(t, tc.ghi, reconstructed, 1e-9, "ghi=%v zenith=%v", tc.ghi, tc.zenith)
	}
}

func TestDecompose_OvercastIsMostlyDiffuse(t *testing.T) {
	// Very low clearness index: almost everything is diffuse.
	dni, dhi := Decompose(50, 40)
	assert.Greater(t, dhi, dni)
}

func TestProject_HorizontalSurfaceReturnsGHI(t *testing.T) {
	ghi, zenith := 700.0, 35.0
	dni, dhi := Decompose(ghi, zenith)
	direct, sky, ground := Project(ghi, dni, dhi, zenith, 180, 0, 180)

	// Flat panel: no ground reflection, sky diffuse = DHI, direct = DNI·cos(z).
	assert.Zero(t, ground)
	assert.InDelta(t, dhi, sky, 1e-9)
	assert.InDelta(t, ghi, direct+sky+ground, 1e-9)
}

func TestProject_NightIsZero(t *testing.T) {
	direct, sky, ground := Project(100, 50, 50, 95, 180, 30, 180)
	assert.Zero(t, direct)
	assert.Zero(t, sky)
	assert.Zero(t, ground)
}

func TestProject_SunBehindSurfaceHasNoDirect(t *testing.T) {
	// Sun due south, surface facing north with a steep tilt.
	ghi, zenith := 600.0, 40.0
	dni, dhi := Decompose(ghi, zenith)
	direct, sky, ground := Project(ghi, dni, dhi, zenith, 180, 80, 0)

	assert.Zero(t, direct)
	assert.Greater(t, sky, 0.0)
	assert.Greater(t, ground, 0.0)
}

func TestProjectSeries_TiltedSouthBeatsHorizontalInWinter(t *testing.T) {
	// Low winter sun: a south-facing 30° surface collects more than a flat one.
	times := []time.Time{
		time.Date(2023, 1, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 15, 11, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC),
	}
	ghi := model.Series{Times: times, Values: []float64{200, 280, 250}}

	flat := model.RoofSurface{TiltDeg: 0, AzimuthDeg: 180, PeakPowerKWp: 1, Efficiency: 1}
	tilted := model.RoofSurface{TiltDeg: 30, AzimuthDeg: 180, PeakPowerKWp: 1, Efficiency: 1}

	flatTotal := ProjectSeries(ghi, berlin, flat).Total().Sum()
	tiltedTotal := ProjectSeries(ghi, berlin, tilted).Total().Sum()

	assert.Greater(t, tiltedTotal, flatTotal)
}

func TestProjectSeries_NightTimestampsStayZero(t *testing.T) {
	times := []time.Time{
		time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 1, 1, 0, 0, 0, time.UTC),
	}
	// Non-zero GHI at night must not leak through the zenith guard.
	ghi := model.Series{Times: times, Values: []float64{5, 5}}
	surface := model.RoofSurface{TiltDeg: 30, AzimuthDeg: 180, PeakPowerKWp: 1, Efficiency: 1}

	poa := ProjectSeries(ghi, berlin, surface)
	for i := range poa.Times {
		assert.Zero(t, poa.Direct[i])
		assert.Zero(t, poa.SkyDiffuse[i])
		assert.Zero(t, poa.GroundDiffuse[i])
	}
}
