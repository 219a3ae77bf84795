// Public domain.

package orbit

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/cometeph/internal/anomaly"
	"github.com/soniakeys/cometeph/internal/comet"
	"github.com/soniakeys/cometeph/internal/frame"
)

// PlanarVelocity returns the closed form velocity in the orbital plane at
// jd, AU/day.
//
// Elliptical orbits use the eccentric anomaly form; parabolic and
// hyperbolic orbits decompose into radial and transverse components with
// semi-parameter p = q(1+e).
func (k *Kinematics) PlanarVelocity(el *comet.Elements, jd float64) (Planar, error) {
	μ := k.c.Mu()
	switch r := el.Regime(); r {
	case anomaly.Elliptical:
		E, err := k.EccentricAnomaly(el, jd)
		if err != nil {
			return Planar{}, err
		}
		e := el.Ecc
		a := el.PDis / (1 - e)
		sE, cE := math.Sincos(E.Rad())
		ra := 1 - e*cE // r/a
		f := math.Sqrt(μ/a) / ra
		return Planar{-f * sE, f * math.Sqrt(1-e*e) * cE}, nil
	case anomaly.Parabolic, anomaly.Hyperbolic:
		ν, err := k.TrueAnomaly(el, jd)
		if err != nil {
			return Planar{}, err
		}
		e := el.Ecc
		if r == anomaly.Parabolic {
			e = 1
		}
		f := math.Sqrt(μ / (el.PDis * (1 + e)))
		s, c := math.Sincos(ν.Rad())
		return Planar{-f * s, f * (e + c)}, nil
	default:
		panic("orbit: unknown regime " + r.String())
	}
}

// Velocity returns the closed form heliocentric equatorial velocity at
// jd, AU/day, in the same frame as EquatorialPosition.
func (k *Kinematics) Velocity(el *comet.Elements, jd float64) (coord.Cart, error) {
	return k.velocity(el, jd, frame.Obliquity(el.OsculationEpoch()))
}

// EclipticVelocity returns the closed form heliocentric ecliptic velocity
// at jd, AU/day.
func (k *Kinematics) EclipticVelocity(el *comet.Elements, jd float64) (coord.Cart, error) {
	return k.velocity(el, jd, 0)
}

func (k *Kinematics) velocity(el *comet.Elements, jd float64, ε unit.Angle) (coord.Cart, error) {
	v, err := k.PlanarVelocity(el, jd)
	if err != nil {
		return coord.Cart{}, err
	}
	P, Q := frame.GaussianVectors(el.Inc, el.Node, el.ArgP, ε)
	return frame.Project(v.X, v.Y, &P, &Q), nil
}

// FiniteDifferenceVelocity estimates heliocentric equatorial velocity by
// numerical differentiation of EquatorialPosition, AU/day.
//
// It is a central difference over jd ± DiffStep and carries the
// truncation error of that approximation.  Velocity is exact to rounding.
func (k *Kinematics) FiniteDifferenceVelocity(el *comet.Elements, jd float64) (coord.Cart, error) {
	t0, t1 := jd-k.c.DiffStep, jd+k.c.DiffStep
	p0, err := k.EquatorialPosition(el, t0)
	if err != nil {
		return coord.Cart{}, err
	}
	p1, err := k.EquatorialPosition(el, t1)
	if err != nil {
		return coord.Cart{}, err
	}
	var v coord.Cart
	v.Sub(&p1, &p0)
	// divide by the step actually taken.  at Julian day magnitudes t1-t0
	// is not exactly 2 DiffStep.
	v.MulScalar(&v, 1/(t1-t0))
	return v, nil
}

// Speed returns the magnitude of velocity v (AU/day) in km/s.
func (k *Kinematics) Speed(v coord.Cart) float64 {
	return k.c.KmPerSec(math.Sqrt(v.Square()))
}

// State is the heliocentric equatorial state of a comet at one instant.
type State struct {
	JD     float64
	Regime anomaly.Regime
	Nu     unit.Angle // true anomaly
	R      float64    // heliocentric distance, AU
	Pos    coord.Cart // AU
	Vel    coord.Cart // AU/day
}

// State computes position and closed form velocity together at jd.
func (k *Kinematics) State(el *comet.Elements, jd float64) (*State, error) {
	ν, err := k.TrueAnomaly(el, jd)
	if err != nil {
		return nil, err
	}
	v, err := k.Velocity(el, jd)
	if err != nil {
		return nil, err
	}
	p := planar(el, ν)
	P, Q := frame.GaussianVectors(el.Inc, el.Node, el.ArgP,
		frame.Obliquity(el.OsculationEpoch()))
	return &State{
		JD:     jd,
		Regime: el.Regime(),
		Nu:     ν,
		R:      math.Hypot(p.X, p.Y),
		Pos:    frame.Project(p.X, p.Y, &P, &Q),
		Vel:    v,
	}, nil
}

// TimeFromPerihelion returns the time in days from perihelion until the
// comet reaches heliocentric distance r.  The comet is at the same
// distance the same number of days before perihelion.
//
// r less than q, or greater than aphelion distance for elliptical orbits,
// returns *anomaly.DomainError.
func (k *Kinematics) TimeFromPerihelion(el *comet.Elements, r float64) (float64, error) {
	q, e := el.PDis, el.Ecc
	switch {
	case r == q:
		return 0, nil
	case r < q:
		return 0, &anomaly.DomainError{Func: "TimeFromPerihelion", Arg: r}
	}
	switch reg := el.Regime(); reg {
	case anomaly.Elliptical:
		a := q / (1 - e)
		if e == 0 || r > a*(1+e) {
			return 0, &anomaly.DomainError{Func: "TimeFromPerihelion", Arg: r}
		}
		cE := (1 - r/a) / e
		E := math.Acos(math.Max(-1, cE))
		return (E - e*math.Sin(E)) / k.c.K * a * math.Sqrt(a), nil
	case anomaly.Parabolic:
		ν := 2 * math.Atan(math.Sqrt(r/q-1))
		return anomaly.BarkerTime(q, unit.Angle(ν), k.c.K), nil
	case anomaly.Hyperbolic:
		a := q / (e - 1) // |a|
		H, err := anomaly.Acosh((1 + r/a) / e)
		if err != nil {
			return 0, err
		}
		return (e*math.Sinh(H) - H) / k.c.K * a * math.Sqrt(a), nil
	default:
		panic("orbit: unknown regime " + reg.String())
	}
}
