package solar

import (
	"math"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

// GroundAlbedo is the fixed ground reflectance used for the ground-reflected
// POA component.
const GroundAlbedo = 0.2

// Project transposes horizontal irradiance components onto a tilted surface
// using an isotropic sky model plus ground reflection. All angles in degrees;
// azimuths in the 0°=North clockwise convention. Results are in W/m².
func Project(ghi, dni, dhi, zenithDeg, sunAzimuthDeg, tiltDeg, surfaceAzimuthDeg float64) (direct, skyDiffuse, groundDiffuse float64) {
	if zenithDeg >= 90 || ghi <= 0 {
		return 0, 0, 0
	}

	tilt := radians(tiltDeg)
	zenith := radians(zenithDeg)

	cosAOI := math.Cos(tilt)*math.Cos(zenith) +
		math.Sin(tilt)*math.Sin(zenith)*math.Cos(radians(sunAzimuthDeg-surfaceAzimuthDeg))
	if cosAOI < 0 {
		cosAOI = 0
	}

	direct = dni * cosAOI
	skyDiffuse = dhi * (1 + math.Cos(tilt)) / 2
	groundDiffuse = ghi * GroundAlbedo * (1 - math.Cos(tilt)) / 2
	return direct, skyDiffuse, groundDiffuse
}

// ProjectSeries maps an hourly GHI series onto a roof surface, producing the
// per-timestamp POA components. Pure per-timestamp computation; no state is
// carried between points.
func ProjectSeries(ghi model.Series, loc model.Location, surface model.RoofSurface) model.POASeries {
	n := ghi.Len()
	poa := model.POASeries{
		Times:         ghi.Times,
		Direct:        make([]float64, n),
		SkyDiffuse:    make([]float64, n),
		GroundDiffuse: make([]float64, n),
	}

	for i, ts := range ghi.Times {
		g := ghi.Values[i]
		zenith, sunAz := Position(ts, loc)
		if zenith >= 90 || g <= 0 {
			continue
		}
		dni, dhi := Decompose(g, zenith)
		poa.Direct[i], poa.SkyDiffuse[i], poa.GroundDiffuse[i] = Project(
			g, dni, dhi, zenith, sunAz, surface.TiltDeg, surface.AzimuthDeg)
	}

	return poa
}
