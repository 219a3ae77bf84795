// Public domain.

package anomaly

import (
	"math"

	"github.com/soniakeys/unit"
)

// some parameters for the solvers
const (
	// Newton iteration stops when the residual of Kepler's equation is
	// below threshold * min(1, |1-e|),
	threshold = 1e-8
	// or when the residual is down to rounding in its largest term,
	noise = 8 * 0x1p-52
	// or when a step no longer changes the estimate by more than a few ulps.
	stall = 4 * 0x1p-52
	// an iteration limit.  normal inputs need fewer than ten.
	maxIter = 50
	// below lowEcc a closed form starter and a single correction suffice.
	lowEcc = .3
)

const twoPi = 2 * math.Pi

// EccentricAnomaly solves Kepler's equation for eccentric anomaly E given
// eccentricity e and mean anomaly M.
//
// For e < 1 the equation is E - e sin E = M, for e > 1 it is the
// hyperbolic form e sinh E - E = M.  M may be any value.  For elliptical
// orbits whole revolutions in M are carried through to E unchanged.
//
// Errors:
//   *DomainError for e < 0 or NaN.
//   *DegenerateInputError for e == 1.  Parabolic orbits have no eccentric
//   anomaly; use Barker.
//   *ConvergenceError if Newton iteration fails to converge.
func EccentricAnomaly(e float64, M unit.Angle) (unit.Angle, error) {
	if !(e >= 0) {
		return 0, &DomainError{"EccentricAnomaly", e}
	}
	switch r := Classify(e, false); r {
	case Elliptical:
		return elliptic(e, M)
	case Parabolic:
		return 0, &DegenerateInputError{"eccentric anomaly", e}
	case Hyperbolic:
		return hyperbolic(e, M)
	default:
		panic(r.unknown())
	}
}

func elliptic(e float64, M unit.Angle) (unit.Angle, error) {
	if e == 0 {
		return M, nil
	}
	m := M.Rad()
	// reduce to [-π, π], remembering whole revolutions
	rev := math.Round(m / twoPi)
	m -= rev * twoPi
	// solve for |m| and reflect.  convergence is symmetric about 0 and
	// starting guesses below are only tuned for m >= 0.
	neg := m < 0
	if neg {
		m = -m
	}
	var E float64
	if e < lowEcc {
		E = lowEccentricity(e, m)
	} else {
		var ok bool
		if E, ok = newtonElliptic(e, m); !ok {
			if neg {
				m, E = -m, -E
			}
			return 0, &ConvergenceError{e,
				unit.Angle(m + rev*twoPi), unit.Angle(E + rev*twoPi), maxIter}
		}
	}
	if neg {
		E = -E
	}
	return unit.Angle(E + rev*twoPi), nil
}

// lowEccentricity is the low eccentricity path: the closed form starter
// atan2(sin M, cos M - e) followed by exactly one correction.
//
// The correction is Danby's extension of the Newton step, still a single
// evaluation of Kepler's equation.  A plain Newton step leaves errors of a
// few 1e-6 radians near e = .3, the extended step stays under 1e-11.
func lowEccentricity(e, m float64) float64 {
	sm, cm := math.Sincos(m)
	E := math.Atan2(sm, cm-e)
	s, c := math.Sincos(E)
	f := E - e*s - m
	f1 := 1 - e*c // derivatives of f
	f2 := e * s
	f3 := e * c
	d := -f / f1
	d = -f / (f1 + .5*d*f2)
	d = -f / (f1 + .5*d*f2 + d*d*f3/6)
	return E + d
}

// newtonElliptic solves E - e sin E = m for 0 <= m <= π.
func newtonElliptic(e, m float64) (E float64, ok bool) {
	E = m
	if e > .8 && m < 1 {
		// near parabolic behavior near perihelion.  E - e sin E ~ E³/6
		// for e near 1, so start from the cubic solution.
		E = math.Cbrt(6 * m)
	}
	tol := tolerance(e)
	for i := 0; i < maxIter; i++ {
		s, c := math.Sincos(E)
		f := E - e*s - m
		if math.Abs(f) < tol || math.Abs(f) <= noise*math.Max(m, math.Abs(E)) {
			return E, true
		}
		d := f / (1 - e*c)
		E -= d
		if math.Abs(d) <= stall*math.Max(1, math.Abs(E)) {
			return E, true
		}
	}
	return E, false
}

func hyperbolic(e float64, M unit.Angle) (unit.Angle, error) {
	m := M.Rad()
	neg := m < 0
	if neg {
		m = -m
	}
	var H float64
	switch {
	case m >= 1:
		// strongly hyperbolic: sinh dominates
		H = math.Asinh(m / e)
	case e < 1.6:
		// e sinh H - H ~ (e-1)H + eH³/6, cubic term dominates near 1
		H = math.Cbrt(6 * m / e)
	default:
		// linear term dominates
		H = m / (e - 1)
	}
	tol := tolerance(e)
	for i := 0; i < maxIter; i++ {
		f := e*math.Sinh(H) - H - m
		// e sinh H is m + H at the root
		if math.Abs(f) < tol || math.Abs(f) <= noise*(m+math.Abs(H)) {
			return sign(neg, H), nil
		}
		d := f / (e*math.Cosh(H) - 1)
		H -= d
		if math.Abs(d) <= stall*math.Max(1, math.Abs(H)) {
			return sign(neg, H), nil
		}
	}
	return 0, &ConvergenceError{e, M, sign(neg, H), maxIter}
}

// tolerance is the residual threshold for Kepler's equation.  Near e = 1
// it is far below double precision and the noise test ends iteration.
func tolerance(e float64) float64 {
	return threshold * math.Min(1, math.Abs(1-e))
}

func sign(neg bool, x float64) unit.Angle {
	if neg {
		return unit.Angle(-x)
	}
	return unit.Angle(x)
}

// MeanFromEccentric evaluates Kepler's equation, returning the mean
// anomaly corresponding to eccentric anomaly E.
func MeanFromEccentric(e float64, E unit.Angle) (unit.Angle, error) {
	switch r := Classify(e, false); r {
	case Elliptical:
		return unit.Angle(E.Rad() - e*math.Sin(E.Rad())), nil
	case Parabolic:
		return 0, &DegenerateInputError{"mean anomaly", e}
	case Hyperbolic:
		return unit.Angle(e*math.Sinh(E.Rad()) - E.Rad()), nil
	default:
		panic(r.unknown())
	}
}

// TrueAnomaly converts eccentric anomaly E to true anomaly.
//
// For elliptical orbits whole revolutions in E are kept in the result.
// For hyperbolic orbits the result is within the asymptotes.
// e == 1 returns *DegenerateInputError.
func TrueAnomaly(e float64, E unit.Angle) (unit.Angle, error) {
	switch r := Classify(e, false); r {
	case Elliptical:
		if e == 0 {
			return E, nil
		}
		rev := math.Round(E.Rad() / twoPi)
		h := (E.Rad() - rev*twoPi) * .5
		// 2 atan(√((1+e)/(1-e)) tan(E/2)), without the pole at E = π
		sh, ch := math.Sincos(h)
		ν := 2 * math.Atan2(math.Sqrt(1+e)*sh, math.Sqrt(1-e)*ch)
		return unit.Angle(ν + rev*twoPi), nil
	case Parabolic:
		return 0, &DegenerateInputError{"eccentric anomaly", e}
	case Hyperbolic:
		return unit.Angle(2 * math.Atan(
			math.Sqrt((e+1)/(e-1))*math.Tanh(E.Rad()*.5))), nil
	default:
		panic(r.unknown())
	}
}

// Acosh is the inverse hyperbolic cosine, returning *DomainError rather
// than NaN for x <= 1.
func Acosh(x float64) (float64, error) {
	if !(x > 1) {
		return 0, &DomainError{"Acosh", x}
	}
	return math.Acosh(x), nil
}
