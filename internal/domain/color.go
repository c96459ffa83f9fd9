package domain

import colorful "github.com/lucasb-eyer/go-colorful"

// Absolute calibration domain of the colour scale, in °C.
const (
	CalibrationMin = 0.0
	CalibrationMax = 240.0
)

// Hue endpoints in degrees.
const (
	HueCold = 240.0 // blue
	HueHot  = 0.0   // red
)

// The green/yellow band that is snapped away from.
const (
	deadZoneLow  = 60.0
	deadZoneHigh = 180.0
	deadZoneMid  = 120.0
)

// ColorStop pins a hue to a temperature on the legend gradient.
type ColorStop struct {
	Temp float64 `json:"temp"`
	Hue  float64 `json:"hue"`
}

// Gradient is an ordered list of colour stops, cold end first.
type Gradient []ColorStop

// LegendGradient is the gradient drawn in the legend: hue 240 at 0 °C down to
// hue 0 at 240 °C.
func LegendGradient() Gradient {
	return Gradient{
		{Temp: CalibrationMin, Hue: HueCold},
		{Temp: CalibrationMax, Hue: HueHot},
	}
}

// HueFor maps a temperature to a hue in [0, 240].
//
// minTemp and maxTemp are the observed range of the trace. They are accepted
// so callers can pass the set's range uniformly, but the scale is absolute and
// ignores them.
func HueFor(temp, minTemp, maxTemp float64) float64 {
	t := clampCalibrated(temp)
	hue := HueCold - (t/CalibrationMax)*HueCold

	if hue > deadZoneLow && hue < deadZoneHigh {
		if hue > deadZoneMid {
			return deadZoneHigh
		}
		return deadZoneLow
	}
	return hue
}

// ColorFor returns the fully saturated colour for a temperature as "#rrggbb".
func ColorFor(temp, minTemp, maxTemp float64) string {
	return colorful.Hsv(HueFor(temp, minTemp, maxTemp), 1, 1).Hex()
}

// HueColor returns the fully saturated colour of a hue as "#rrggbb".
func HueColor(hue float64) string {
	return colorful.Hsv(hue, 1, 1).Hex()
}

// clampCalibrated clamps t to the calibration domain. NaN clamps to the cold end.
func clampCalibrated(t float64) float64 {
	switch {
	case !(t > CalibrationMin):
		return CalibrationMin
	case t > CalibrationMax:
		return CalibrationMax
	default:
		return t
	}
}
