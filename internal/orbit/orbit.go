// Public domain.

// Package orbit computes positions and velocities of comets on two-body
// orbits.
//
// Kinematics combines the anomaly solvers with the frame transforms.  Every
// query classifies the orbit afresh from its elements and is otherwise
// stateless, so one Kinematics may be shared by concurrent goroutines.
package orbit

import (
	"math"

	"github.com/soniakeys/astro"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/cometeph/internal/anomaly"
	"github.com/soniakeys/cometeph/internal/comet"
	"github.com/soniakeys/cometeph/internal/frame"
)

// Constants are the physical constants used by Kinematics.
type Constants struct {
	K             float64 // Gaussian gravitational constant
	AU            float64 // astronomical unit, km
	C             float64 // speed of light, km/s
	SecondsPerDay float64
	// DiffStep is the half width in days of the central difference used
	// by FiniteDifferenceVelocity.
	DiffStep float64
}

// IAU2012 holds the IAU 2012 astronomical unit with the Gaussian constant.
var IAU2012 = Constants{
	K:             astro.K,
	AU:            149597870.7,
	C:             299792.458,
	SecondsPerDay: 86400,
	DiffStep:      1. / 86400,
}

// Mu returns the solar gravitational parameter in AU³/day².
func (c *Constants) Mu() float64 {
	return c.K * c.K
}

// KmPerSec converts a speed in AU/day to km/s.
func (c *Constants) KmPerSec(auPerDay float64) float64 {
	return auPerDay * c.AU / c.SecondsPerDay
}

// LightDay returns the speed of light in AU/day.
func (c *Constants) LightDay() float64 {
	return c.C * c.SecondsPerDay / c.AU
}

// Kinematics answers position and velocity queries.
type Kinematics struct {
	c Constants
}

// New creates a Kinematics using constants c.
func New(c Constants) *Kinematics {
	return &Kinematics{c}
}

// Constants returns the constants k was created with.
func (k *Kinematics) Constants() Constants {
	return k.c
}

// Planar is a point or velocity in the orbital plane, X toward perihelion.
type Planar struct {
	X, Y float64
}

// Distance returns heliocentric distance for true anomaly ν on a conic of
// regime r with perihelion distance q and eccentricity e.
func Distance(r anomaly.Regime, q, e float64, ν unit.Angle) float64 {
	switch r {
	case anomaly.Elliptical, anomaly.Hyperbolic:
		return q * (1 + e) / (1 + e*math.Cos(ν.Rad()))
	case anomaly.Parabolic:
		// no division by 1 + cos ν, which vanishes at ν = 180°
		t := math.Tan(ν.Rad() * .5)
		return q * (1 + t*t)
	default:
		panic("orbit: unknown regime " + r.String())
	}
}

// SemiMajorAxis returns a = q / (1-e), negative for hyperbolic orbits.
// Parabolic orbits return *anomaly.DegenerateInputError.
func SemiMajorAxis(el *comet.Elements) (float64, error) {
	switch r := el.Regime(); r {
	case anomaly.Elliptical, anomaly.Hyperbolic:
		return el.PDis / (1 - el.Ecc), nil
	case anomaly.Parabolic:
		return 0, &anomaly.DegenerateInputError{Quantity: "semi-major axis", Ecc: el.Ecc}
	default:
		panic("orbit: unknown regime " + r.String())
	}
}

// ReciprocalAxis returns 1/a in AU⁻¹, 0 for parabolic orbits.
func ReciprocalAxis(el *comet.Elements) float64 {
	if el.Regime() == anomaly.Parabolic {
		return 0
	}
	return (1 - el.Ecc) / el.PDis
}

// Period returns the orbital period in Julian years.  Only elliptical
// orbits have a period; others return *anomaly.DegenerateInputError.
func (k *Kinematics) Period(el *comet.Elements) (float64, error) {
	if r := el.Regime(); r != anomaly.Elliptical {
		return 0, &anomaly.DegenerateInputError{Quantity: "period", Ecc: el.Ecc}
	}
	a := el.PDis / (1 - el.Ecc)
	return 2 * math.Pi / k.c.K * a * math.Sqrt(a) / 365.25, nil
}

// MeanMotion returns mean motion in radians per day for elliptical and
// hyperbolic orbits.
func (k *Kinematics) MeanMotion(el *comet.Elements) (float64, error) {
	a, err := SemiMajorAxis(el)
	if err != nil {
		return 0, err
	}
	a = math.Abs(a)
	return k.c.K / (a * math.Sqrt(a)), nil
}

// MeanAnomaly returns mean anomaly at Julian day jd, n (jd - T).
func (k *Kinematics) MeanAnomaly(el *comet.Elements, jd float64) (unit.Angle, error) {
	n, err := k.MeanMotion(el)
	if err != nil {
		return 0, err
	}
	return unit.Angle(n * el.DaysSincePerihelion(jd)), nil
}

// EccentricAnomaly returns eccentric anomaly at jd.  Parabolic orbits
// return *anomaly.DegenerateInputError.
func (k *Kinematics) EccentricAnomaly(el *comet.Elements, jd float64) (unit.Angle, error) {
	M, err := k.MeanAnomaly(el, jd)
	if err != nil {
		return 0, err
	}
	return anomaly.EccentricAnomaly(el.Ecc, M)
}

// TrueAnomaly returns true anomaly at jd.
//
// Parabolic orbits use Barker's equation, the others solve Kepler's
// equation and convert eccentric to true anomaly.
func (k *Kinematics) TrueAnomaly(el *comet.Elements, jd float64) (unit.Angle, error) {
	switch r := el.Regime(); r {
	case anomaly.Parabolic:
		return anomaly.Barker(el.PDis, el.DaysSincePerihelion(jd), k.c.K), nil
	case anomaly.Elliptical, anomaly.Hyperbolic:
		E, err := k.EccentricAnomaly(el, jd)
		if err != nil {
			return 0, err
		}
		return anomaly.TrueAnomaly(el.Ecc, E)
	default:
		panic("orbit: unknown regime " + r.String())
	}
}

// Radius returns heliocentric distance in AU at jd.
func (k *Kinematics) Radius(el *comet.Elements, jd float64) (float64, error) {
	ν, err := k.TrueAnomaly(el, jd)
	if err != nil {
		return 0, err
	}
	return Distance(el.Regime(), el.PDis, el.Ecc, ν), nil
}

// OrbitPlanePosition returns the position in the orbital plane at jd,
// (r cos ν, r sin ν).
func (k *Kinematics) OrbitPlanePosition(el *comet.Elements, jd float64) (Planar, error) {
	ν, err := k.TrueAnomaly(el, jd)
	if err != nil {
		return Planar{}, err
	}
	return planar(el, ν), nil
}

func planar(el *comet.Elements, ν unit.Angle) Planar {
	r := Distance(el.Regime(), el.PDis, el.Ecc, ν)
	s, c := math.Sincos(ν.Rad())
	return Planar{r * c, r * s}
}

// EclipticPosition returns the heliocentric ecliptic J2000 position in AU.
func (k *Kinematics) EclipticPosition(el *comet.Elements, jd float64) (coord.Cart, error) {
	return k.position(el, jd, 0)
}

// EquatorialPosition returns the heliocentric equatorial position in AU,
// using the obliquity at the epoch of the elements.
func (k *Kinematics) EquatorialPosition(el *comet.Elements, jd float64) (coord.Cart, error) {
	return k.position(el, jd, frame.Obliquity(el.OsculationEpoch()))
}

func (k *Kinematics) position(el *comet.Elements, jd float64, ε unit.Angle) (coord.Cart, error) {
	p, err := k.OrbitPlanePosition(el, jd)
	if err != nil {
		return coord.Cart{}, err
	}
	P, Q := frame.GaussianVectors(el.Inc, el.Node, el.ArgP, ε)
	return frame.Project(p.X, p.Y, &P, &Q), nil
}

// Separation returns the distance between two positions.
func Separation(a, b coord.Cart) float64 {
	var d coord.Cart
	d.Sub(&a, &b)
	return math.Sqrt(d.Square())
}
