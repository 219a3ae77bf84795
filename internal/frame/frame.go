// Public domain.

// Package frame rotates orbital plane coordinates into the ecliptic and
// equatorial frames.
//
// Two independent paths are provided.  GaussianVectors computes the P and Q
// unit vectors spanning the orbital plane, and Project combines them with
// planar coordinates.  PlaneToEcliptic applies the 3-1-3 rotation by
// argument of perihelion, inclination and node directly.
package frame

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/mat"
)

// J2000 as a Julian day, and days per Julian millennium.
const (
	J2000            = 2451545.
	JulianMillennium = 365250.
)

// Obliquity returns the mean obliquity of the ecliptic for Julian day jd.
//
// It is a linear model anchored at J2000,
//   ε = (84381.448 - .024 T) / 3600 degrees
// with T in Julian millennia from J2000.
func Obliquity(jd float64) unit.Angle {
	T := (jd - J2000) / JulianMillennium
	return unit.AngleFromSec(84381.448 - .024*T)
}

// GaussianVectors returns the orbital plane basis vectors P (toward
// perihelion) and Q (90° ahead in the direction of motion).
//
// With ε = 0 the vectors are in ecliptic coordinates, otherwise they are
// equatorial for obliquity ε.
func GaussianVectors(inc, node, argP, ε unit.Angle) (P, Q coord.Cart) {
	si, ci := math.Sincos(inc.Rad())
	sΩ, cΩ := math.Sincos(node.Rad())
	sω, cω := math.Sincos(argP.Rad())
	sε, cε := math.Sincos(ε.Rad())

	// ecliptic components
	px := cω*cΩ - sω*sΩ*ci
	py := cω*sΩ + sω*cΩ*ci
	pz := sω * si
	qx := -sω*cΩ - cω*sΩ*ci
	qy := -sω*sΩ + cω*cΩ*ci
	qz := cω * si

	// rotate about x by -ε
	P = coord.Cart{
		X: px,
		Y: py*cε - pz*sε,
		Z: py*sε + pz*cε,
	}
	Q = coord.Cart{
		X: qx,
		Y: qy*cε - qz*sε,
		Z: qy*sε + qz*cε,
	}
	return
}

// Project returns the 3-D point x P + y Q.
func Project(x, y float64, P, Q *coord.Cart) (p coord.Cart) {
	var yq coord.Cart
	p.MulScalar(P, x)
	yq.MulScalar(Q, y)
	p.Add(&p, &yq)
	return
}

// PlaneToEcliptic rotates orbital plane coordinates (x toward perihelion)
// into ecliptic coordinates: R3(-Ω) R1(-i) R3(-ω).
func PlaneToEcliptic(x, y float64, inc, node, argP unit.Angle) coord.Cart {
	var m mat.Dense
	m.Mul(r3(-node.Rad()), r1(-inc.Rad()))
	m.Mul(&m, r3(-argP.Rad()))
	var v mat.VecDense
	v.MulVec(&m, mat.NewVecDense(3, []float64{x, y, 0}))
	return coord.Cart{X: v.AtVec(0), Y: v.AtVec(1), Z: v.AtVec(2)}
}

// r1 is a frame rotation about the first axis.
func r1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// r3 is a frame rotation about the third axis.
func r3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// EclipticToEquatorial rotates ecliptic coordinates to equatorial for
// obliquity ε.
func EclipticToEquatorial(v coord.Cart, ε unit.Angle) coord.Cart {
	s, c := math.Sincos(ε.Rad())
	v.RotateX(&v, -s, c)
	return v
}

// EquatorialToEcliptic rotates equatorial coordinates to ecliptic for
// obliquity ε.
func EquatorialToEcliptic(v coord.Cart, ε unit.Angle) coord.Cart {
	s, c := math.Sincos(ε.Rad())
	v.RotateX(&v, s, c)
	return v
}

// RADec returns right ascension, declination and distance of an
// equatorial vector.
func RADec(v coord.Cart) (α unit.RA, δ unit.Angle, d float64) {
	d = math.Sqrt(v.Square())
	a := math.Atan2(v.Y, v.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	α = unit.RA(a)
	δ = unit.Angle(math.Asin(v.Z / d))
	return
}
