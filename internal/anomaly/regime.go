// Public domain.

// Package anomaly solves Kepler's equation for comet orbits.
//
// Mean anomaly is converted to eccentric anomaly for elliptical and
// hyperbolic orbits and eccentric anomaly to true anomaly.  Exactly
// parabolic orbits have no eccentric anomaly; their true anomaly comes
// directly from time since perihelion through Barker's equation.
//
// Angles cross the package boundary as unit.Angle.  Construct them from
// degrees with unit.AngleFromDeg, read them back with Deg().
package anomaly

import "fmt"

// Regime is the conic section an orbit follows.
//
// The zero value is not a valid regime.  Use Classify.
type Regime int

const (
	_ Regime = iota
	Elliptical
	Parabolic
	Hyperbolic
)

var regimeName = [...]string{
	Elliptical: "elliptical",
	Parabolic:  "parabolic",
	Hyperbolic: "hyperbolic",
}

func (r Regime) String() string {
	if r < Elliptical || r > Hyperbolic {
		return fmt.Sprintf("Regime(%d)", int(r))
	}
	return regimeName[r]
}

// Classify returns the regime for eccentricity e.
//
// An orbit explicitly tagged parabolic is parabolic whatever e says.
// Otherwise the comparison with 1 is strict; near parabolic orbits are
// elliptical or hyperbolic.
func Classify(e float64, parabolic bool) Regime {
	switch {
	case parabolic || e == 1:
		return Parabolic
	case e < 1:
		return Elliptical
	}
	return Hyperbolic
}

// NearParabolic reports whether e is close enough to 1 that the orbit is
// conventionally called near parabolic.  It does not change how any
// function in this package solves the orbit.
func NearParabolic(e float64) bool {
	return e > .98 && e < 1.02 && e != 1
}

// unknown is called from the default case of every switch on Regime.
func (r Regime) unknown() string {
	return "anomaly: unknown orbit regime " + r.String()
}
