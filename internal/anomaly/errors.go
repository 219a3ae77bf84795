// Public domain.

package anomaly

import (
	"fmt"

	"github.com/soniakeys/unit"
)

// DegenerateInputError reports a quantity that is undefined for the
// orbit, such as the semi-major axis or eccentric anomaly of a parabola.
type DegenerateInputError struct {
	Quantity string
	Ecc      float64
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s undefined for parabolic orbit (e = %g)",
		e.Quantity, e.Ecc)
}

// ConvergenceError reports Newton iteration that did not converge within
// the iteration limit.  E is the last estimate.
type ConvergenceError struct {
	Ecc  float64
	M, E unit.Angle
	Iter int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("Kepler's equation: no convergence after %d "+
		"iterations (e = %g, M = %g rad, last E = %g rad)",
		e.Iter, e.Ecc, e.M.Rad(), e.E.Rad())
}

// DomainError reports an argument outside the domain of a function.
type DomainError struct {
	Func string
	Arg  float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: argument %g out of domain", e.Func, e.Arg)
}
