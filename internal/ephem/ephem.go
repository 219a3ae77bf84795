// Public domain.

// Package ephem computes apparent places of comets as seen from the Earth
// or from an observatory site.
//
// Observer positions come from the low precision solar ephemeris of
// astro.Se2000, good to about .01°, which sets the accuracy of everything
// here.  Places are astrometric: light time is applied, aberration and
// nutation are not.
package ephem

import (
	"errors"
	"math"

	"github.com/soniakeys/astro"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/observation"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/cometeph/internal/comet"
	"github.com/soniakeys/cometeph/internal/frame"
	"github.com/soniakeys/cometeph/internal/orbit"
)

// MJD = JD - MJDOffset
const MJDOffset = 2400000.5

// light time iteration
const (
	ltTol  = 1e-9 // days
	ltIter = 8
)

// Observer returns the heliocentric ecliptic position of an observer in
// AU at Julian day jd.
//
// A nil par gives the geocenter.  Otherwise the site offset from
// observation.SiteObs is added.
func Observer(jd float64, par *observation.ParallaxConst) coord.Cart {
	mjd := jd - MJDOffset
	sunEarth, soe, coe := astro.Se2000(mjd)
	var sunObserver coord.Cart
	if par == nil {
		sunObserver.MulScalar(&sunEarth, -1)
	} else {
		so := &observation.SiteObs{Par: par}
		so.VMeas.MJD = mjd
		earthSite := so.EarthObserverVect()
		sunObserver.Sub(&earthSite, &sunEarth)
	}
	// equatorial of date to ecliptic
	sunObserver.RotateX(&sunObserver, soe, coe)
	return sunObserver
}

// Entry is one line of an ephemeris.
type Entry struct {
	JD    float64
	RA    unit.RA    // J2000 mean equator
	Dec   unit.Angle // J2000 mean equator
	Delta float64    // observer-comet distance, AU
	R     float64    // sun-comet distance at emission, AU
	Elong unit.Angle // sun-observer-comet angle
	Phase unit.Angle // sun-comet-observer angle
	// LightTime is the travel time from comet to observer in days.
	LightTime float64
	// Mag is total magnitude, NaN when the elements carry no magnitude
	// parameters.
	Mag float64
	// Helio is the heliocentric ecliptic position at emission, AU.
	Helio coord.Cart
}

// Ephemeris computes entries for one observer.
type Ephemeris struct {
	k   *orbit.Kinematics
	par *observation.ParallaxConst
}

// New returns an Ephemeris for the site with parallax constants par, or
// the geocenter if par is nil.
func New(k *orbit.Kinematics, par *observation.ParallaxConst) *Ephemeris {
	return &Ephemeris{k, par}
}

// At returns the ephemeris entry for el at Julian day jd.
//
// Errors are those of the orbit solvers.
func (e *Ephemeris) At(el *comet.Elements, jd float64) (*Entry, error) {
	c := e.k.Constants()
	obs := Observer(jd, e.par)
	var helio, geo coord.Cart
	var Δ, τ float64
	for i := 0; i < ltIter; i++ {
		var err error
		if helio, err = e.k.EclipticPosition(el, jd-τ); err != nil {
			return nil, err
		}
		geo.Sub(&helio, &obs)
		Δ = math.Sqrt(geo.Square())
		τ0 := τ
		τ = Δ / c.LightDay()
		if math.Abs(τ-τ0) < ltTol {
			break
		}
	}
	r := math.Sqrt(helio.Square())
	en := &Entry{
		JD:        jd,
		Delta:     Δ,
		R:         r,
		LightTime: τ,
		Mag:       math.NaN(),
		Helio:     helio,
	}
	eq := frame.EclipticToEquatorial(geo, frame.Obliquity(frame.J2000))
	en.RA, en.Dec, _ = frame.RADec(eq)

	// vectors from the observer and from the comet toward the sun
	var ts, cs, co coord.Cart
	ts.MulScalar(&obs, -1)
	cs.MulScalar(&helio, -1)
	co.MulScalar(&geo, -1)
	en.Elong = angle(&ts, &geo)
	en.Phase = angle(&cs, &co)
	if el.H != 0 || el.G != 0 {
		en.Mag = Magnitude(el.H, el.G, Δ, r)
	}
	return en, nil
}

// angle returns the angle between a and b.
func angle(a, b *coord.Cart) unit.Angle {
	var x coord.Cart
	x.Cross(a, b)
	return unit.Angle(math.Atan2(math.Sqrt(x.Square()), a.Dot(b)))
}

// Magnitude returns total comet magnitude m = H + 5 log Δ + 2.5 G log r.
func Magnitude(h, g, Δ, r float64) float64 {
	return h + 5*math.Log10(Δ) + 2.5*g*math.Log10(r)
}

// ErrStep is returned by Range for a step that is not positive.
var ErrStep = errors.New("ephem: step must be positive")

// Range computes entries from start to end inclusive, step days apart.
// It stops at the first error.
func (e *Ephemeris) Range(el *comet.Elements, start, end, step float64) ([]*Entry, error) {
	if !(step > 0) {
		return nil, ErrStep
	}
	var ens []*Entry
	// count steps rather than accumulate jd so end is hit exactly
	n := int(math.Floor((end-start)/step + 1e-9))
	for i := 0; i <= n; i++ {
		en, err := e.At(el, start+float64(i)*step)
		if err != nil {
			return ens, err
		}
		ens = append(ens, en)
	}
	return ens, nil
}
