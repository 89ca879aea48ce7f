// Package geometry computes joint angles from 2D landmark positions.
package geometry

import (
	"math"

	"github.com/ayusman/shadowbox/internal/pose"
)

// Epsilon is the minimum limb vector length treated as non-degenerate.
const Epsilon = 1e-6

// Angle returns the interior angle at vertex b formed by the rays b->a and
// b->c, in degrees within [0, 180].
//
// If either ray is shorter than Epsilon the angle is undefined and NaN is
// returned. Use IsDegenerate to test for it.
func Angle(a, b, c pose.Point2D) float64 {
	ba := a.Sub(b)
	bc := c.Sub(b)

	normBA := math.Hypot(ba.X, ba.Y)
	normBC := math.Hypot(bc.X, bc.Y)
	if normBA < Epsilon || normBC < Epsilon {
		return math.NaN()
	}

	cosine := (ba.X*bc.X + ba.Y*bc.Y) / (normBA * normBC)

	// Rounding can push the ratio just outside acos's domain.
	cosine = math.Max(-1.0, math.Min(1.0, cosine))

	return math.Acos(cosine) * 180.0 / math.Pi
}

// IsDegenerate reports whether v is the sentinel returned by Angle for
// coincident points.
func IsDegenerate(v float64) bool {
	return math.IsNaN(v)
}

// TruncDegrees truncates an angle toward zero to whole degrees.
// ok is false for the degenerate sentinel, which has no integer value.
func TruncDegrees(v float64) (deg int, ok bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(math.Trunc(v)), true
}
