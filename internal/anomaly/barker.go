// Public domain.

package anomaly

import (
	"math"

	"github.com/soniakeys/unit"
)

// Barker returns true anomaly on a parabolic orbit.
//
// Args:
//   q:  perihelion distance in AU
//   dt: days since perihelion, negative before perihelion
//   k:  Gaussian gravitational constant
//
// Barker's equation s³ + 3s = W, s = tan(ν/2), W = 3k/√2 dt/q^1.5, is
// solved in closed form.
func Barker(q, dt, k float64) unit.Angle {
	w := 3 * k / math.Sqrt2 * dt / (q * math.Sqrt(q))
	// the solution is odd in w.  solving for |w| avoids cancellation in
	// g + √(g²+1) for large negative g.
	g := math.Abs(w) * .5
	y := math.Cbrt(g + math.Sqrt(g*g+1))
	// s = y - 1/y, rewritten using y³ - 1/y³ = 2g to avoid cancellation
	// when y is near 1.
	y2 := y * y
	s := 2 * g / (y2 + 1 + 1/y2)
	if w < 0 {
		s = -s
	}
	return unit.Angle(2 * math.Atan(s))
}

// BarkerTime is the inverse of Barker, returning days since perihelion
// for true anomaly ν on a parabola with perihelion distance q.
func BarkerTime(q float64, ν unit.Angle, k float64) float64 {
	s := math.Tan(ν.Rad() * .5)
	return (s*s*s + 3*s) * math.Sqrt2 * q * math.Sqrt(q) / (3 * k)
}
