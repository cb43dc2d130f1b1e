package solar

import (
	"math"
	"time"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

// Position computes the solar zenith and azimuth angles in degrees for a UTC
// timestamp and location, using the NOAA low-accuracy ephemeris (fractional
// year, equation of time, declination, hour angle). Azimuth follows the same
// compass convention as model.RoofSurface: 0° = North, clockwise.
func Position(t time.Time, loc model.Location) (zenithDeg, azimuthDeg float64) {
	t = t.UTC()

	doy := float64(t.YearDay())
	hours := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600

	// Fractional year in radians.
	gamma := 2 * math.Pi / 365 * (doy - 1 + (hours-12)/24)

	// Equation of time in minutes.
	eqTime := 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) - 0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) - 0.040849*math.Sin(2*gamma))

	// Solar declination in radians.
	decl := 0.006918 -
		0.399912*math.Cos(gamma) + 0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) + 0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) + 0.00148*math.Sin(3*gamma)

	// True solar time in minutes; longitude east positive.
	tst := hours*60 + eqTime + 4*loc.LongitudeDeg

	// Hour angle: 0 at solar noon, positive in the afternoon.
	ha := radians(tst/4 - 180)

	lat := radians(loc.LatitudeDeg)

	cosZenith := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(ha)
	cosZenith = clamp(cosZenith, -1, 1)
	zenith := math.Acos(cosZenith)

	// Azimuth measured from south (positive westward), shifted to the
	// 0°=North clockwise compass convention.
	azSouth := math.Atan2(math.Sin(ha), math.Cos(ha)*math.Sin(lat)-math.Tan(decl)*math.Cos(lat))
	azimuth := math.Mod(degrees(azSouth)+180, 360)
	if azimuth < 0 {
		azimuth += 360
	}

	return degrees(zenith), azimuth
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
