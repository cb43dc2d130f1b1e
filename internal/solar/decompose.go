package solar

import "math"

// ExtraterrestrialIrradiance is the solar constant in W/m².
const ExtraterrestrialIrradiance = 1367.0

// Decompose splits global horizontal irradiance into direct normal and
// diffuse horizontal components using the Erbs clearness-index model.
// Night (zenith ≥ 90°) and non-positive GHI yield zero components.
func Decompose(ghi, zenithDeg float64) (dni, dhi float64) {
	if zenithDeg >= 90 || ghi <= 0 {
		return 0, 0
	}

	cosZenith := math.Cos(radians(zenithDeg))
	if cosZenith <= 0 {
		return 0, 0
	}

	kt := ghi / (ExtraterrestrialIrradiance * cosZenith)
	kt = clamp(kt, 0, 1)

	var kd float64
	switch {
	case kt <= 0.22:
		kd = 1 - 0.09*kt
	case kt <= 0.80:
		kd = 0.9511 - 0.1604*kt + 4.388*kt*kt - 16.638*kt*kt*kt + 12.336*kt*kt*kt*kt
	default:
		kd = 0.165
	}

	dhi = ghi * kd
	dni = (ghi - dhi) / cosZenith
	return dni, dhi
}
