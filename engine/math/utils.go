package math

import (
	m "math"

	"golang.org/x/exp/constraints"
)

const (
	// Smallest positive float32 where 1.0 + FloatEpsilon != 1.0.
	FloatEpsilon float32 = 1.192092896e-07

	Deg2RadMultiplier float32 = m.Pi / 180.0
	Rad2DegMultiplier float32 = 180.0 / m.Pi
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// RangeConvert remaps value from the range [oldMin, oldMax] to
// [newMin, newMax].
func RangeConvert[T constraints.Float](value, oldMin, oldMax, newMin, newMax T) T {
	return ((value-oldMin)*(newMax-newMin))/(oldMax-oldMin) + newMin
}

func DegToRad(degrees float32) float32 {
	return degrees * Deg2RadMultiplier
}

func RadToDeg(radians float32) float32 {
	return radians * Rad2DegMultiplier
}

// FloatEqual reports whether two float32 values are equal within
// FloatEpsilon scaled by their magnitude.
func FloatEqual(a, b float32) bool {
	diff := float32(m.Abs(float64(a - b)))
	if diff <= FloatEpsilon {
		return true
	}
	largest := float32(m.Max(m.Abs(float64(a)), m.Abs(float64(b))))
	return diff <= largest*FloatEpsilon
}
