// Public domain.

// Package comet holds comet orbital elements and reads them from the
// Minor Planet Center one-line format.
package comet

import (
	"errors"
	"math"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/cometeph/internal/anomaly"
)

// Elements are the classical two-body elements of a comet orbit.
//
// Angles are referred to the ecliptic and equinox of J2000.  Times are
// Julian days.
type Elements struct {
	Desig string // packed designation, as in the element file
	Name  string // readable designation and name

	TimeP float64 // time of perihelion passage, T
	PDis  float64 // perihelion distance q, AU
	Ecc   float64 // eccentricity e

	ArgP unit.Angle // argument of perihelion ω
	Node unit.Angle // longitude of ascending node Ω
	Inc  unit.Angle // inclination i

	Epoch float64 // epoch of osculation, 0 if not given

	// total magnitude parameters, m = H + 5 log Δ + 2.5 G log r
	H, G float64

	// Parabolic tags the orbit as parabolic regardless of Ecc.
	Parabolic bool
}

// Regime classifies the orbit.  It is computed from Ecc and the Parabolic
// tag on every call.
func (el *Elements) Regime() anomaly.Regime {
	return anomaly.Classify(el.Ecc, el.Parabolic)
}

// NearParabolic reports 0.98 < e < 1.02, e != 1.
func (el *Elements) NearParabolic() bool {
	return anomaly.NearParabolic(el.Ecc)
}

// DaysSincePerihelion returns jd - T, negative before perihelion.
func (el *Elements) DaysSincePerihelion(jd float64) float64 {
	return jd - el.TimeP
}

// OsculationEpoch returns Epoch, or the time of perihelion if no epoch
// was given.
func (el *Elements) OsculationEpoch() float64 {
	if el.Epoch == 0 {
		return el.TimeP
	}
	return el.Epoch
}

// Validate checks elements for physically meaningful values.
func (el *Elements) Validate() error {
	switch {
	case !(el.PDis > 0) || math.IsInf(el.PDis, 1):
		return errors.New("perihelion distance must be positive")
	case !(el.Ecc >= 0) || math.IsInf(el.Ecc, 1):
		return errors.New("eccentricity must be non-negative")
	case !finite(el.ArgP.Rad()) || !finite(el.Node.Rad()) ||
		!finite(el.Inc.Rad()):
		return errors.New("angular elements must be finite")
	case !finite(el.TimeP):
		return errors.New("time of perihelion must be finite")
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
