// Package units converts between points and the presentation API's native
// unit.
//
// The engine computes exclusively in points (1pt = 1/72 inch). The remote
// presentation service measures in English Metric Units (EMU); the
// conversion is a fixed linear ratio with no rounding guarantees beyond
// floating-point precision.
package units

// Conversion ratios.
const (
	// EMUPerPoint is the presentation API's native unit density.
	EMUPerPoint = 12700.0

	// PointsPerInch is the definition of the point.
	PointsPerInch = 72.0
)

// ToEMU converts points to EMU.
func ToEMU(points float64) float64 {
	return points * EMUPerPoint
}

// FromEMU converts EMU to points.
func FromEMU(emu float64) float64 {
	return emu / EMUPerPoint
}

// InchesToPoints converts inches to points.
func InchesToPoints(inches float64) float64 {
	return inches * PointsPerInch
}

// PointsToInches converts points to inches.
func PointsToInches(points float64) float64 {
	return points / PointsPerInch
}
