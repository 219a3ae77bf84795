// Public domain.

package anomaly_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/iterate"
	"github.com/soniakeys/unit"
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/soniakeys/cometeph/internal/anomaly"
)

func ExampleEccentricAnomaly() {
	E, err := anomaly.EccentricAnomaly(.5, unit.AngleFromDeg(90))
	if err != nil {
		fmt.Println(err)
		return
	}
	ν, _ := anomaly.TrueAnomaly(.5, E)
	fmt.Printf("E = %.6f rad\n", E.Rad())
	fmt.Printf("ν = %.4f°\n", ν.Deg())
	// Output:
	// E = 2.020980 rad
	// ν = 140.1776°
}

func TestClassify(t *testing.T) {
	for _, c := range []struct {
		e     float64
		tag   bool
		want  anomaly.Regime
		nearP bool
	}{
		{0, false, anomaly.Elliptical, false},
		{.5, false, anomaly.Elliptical, false},
		{.99, false, anomaly.Elliptical, true},
		{1, false, anomaly.Parabolic, false},
		{.9999, true, anomaly.Parabolic, true},
		{1.01, false, anomaly.Hyperbolic, true},
		{2, false, anomaly.Hyperbolic, false},
	} {
		if got := anomaly.Classify(c.e, c.tag); got != c.want {
			t.Errorf("Classify(%g, %t) = %v, want %v", c.e, c.tag, got, c.want)
		}
		if got := anomaly.NearParabolic(c.e); got != c.nearP {
			t.Errorf("NearParabolic(%g) = %t", c.e, got)
		}
	}
	if s := anomaly.Regime(0).String(); s != "Regime(0)" {
		t.Error("zero regime string:", s)
	}
}

// full Newton iteration to full precision, independent of the package
// solver.
func fullNewton(e, m float64) (float64, error) {
	return iterate.FullPrecision(func(E float64) float64 {
		return E - (E-e*math.Sin(E)-m)/(1-e*math.Cos(E))
	}, m, 100)
}

func TestLowEccentricityAgreesWithNewton(t *testing.T) {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	for n := 0; n < 2000; n++ {
		e := .3 * rnd.Float64()
		m := (2*rnd.Float64() - 1) * math.Pi
		if m == 0 {
			continue
		}
		E, err := anomaly.EccentricAnomaly(e, unit.Angle(m))
		if err != nil {
			t.Fatal(err)
		}
		want, err := fullNewton(e, m)
		if err != nil {
			t.Fatal(err)
		}
		if !scalar.EqualWithinAbs(E.Rad(), want, 1e-8) {
			t.Fatalf("e = %g M = %g: E = %.12f, Newton %.12f",
				e, m, E.Rad(), want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	check := func(e, m float64) {
		E, err := anomaly.EccentricAnomaly(e, unit.Angle(m))
		if err != nil {
			t.Fatal(err)
		}
		M, err := anomaly.MeanFromEccentric(e, E)
		if err != nil {
			t.Fatal(err)
		}
		// residual threshold, plus rounding in M for large |M|
		tol := 1e-8*math.Abs(1-e) + 1e-14*math.Max(1, math.Abs(m))
		if math.Abs(M.Rad()-m) > tol {
			t.Fatalf("e = %g M = %g: recovered M = %g", e, m, M.Rad())
		}
	}
	for n := 0; n < 2000; n++ {
		// elliptical, including several revolutions either way
		check(rnd.Float64()*.9999, (2*rnd.Float64()-1)*20)
		// hyperbolic, near parabolic up to strongly hyperbolic
		check(1+math.Pow(10, 7*rnd.Float64()-5),
			(2*rnd.Float64()-1)*math.Pow(10, 6*rnd.Float64()-3))
	}
	for _, e := range []float64{.3, .8, .81, .99, .999999} {
		for _, m := range []float64{1e-9, 1e-3, .5, 1, 3, math.Pi, -math.Pi} {
			check(e, m)
		}
	}
}

// within 1e-9 of e = 1 the residual threshold is below double precision.
// iteration must still end, at rounding level.
func TestExtremeNearParabolic(t *testing.T) {
	for _, de := range []float64{1e-9, 1e-10, 1e-12} {
		for _, e := range []float64{1 - de, 1 + de} {
			for i := 0; i <= 220; i++ {
				m := math.Pow(10, -8+11*float64(i)/220)
				E, err := anomaly.EccentricAnomaly(e, unit.Angle(m))
				if err != nil {
					t.Fatalf("e = %.12f M = %g: %v", e, m, err)
				}
				M, err := anomaly.MeanFromEccentric(e, E)
				if err != nil {
					t.Fatal(err)
				}
				if math.Abs(M.Rad()-m) > 1e-13*math.Max(1, m) {
					t.Fatalf("e = %.12f M = %g: recovered M = %g", e, m, M.Rad())
				}
			}
		}
	}
}

// the residual threshold does not grow with e.
func TestStronglyHyperbolicResidual(t *testing.T) {
	for _, c := range []struct{ e, m float64 }{
		{10, 5},
		{10, 1e4},
		{1e6, .3},
		{1e6, 1e4},
	} {
		H, err := anomaly.EccentricAnomaly(c.e, unit.Angle(c.m))
		if err != nil {
			t.Fatal(err)
		}
		if r := c.e*math.Sinh(H.Rad()) - H.Rad() - c.m; math.Abs(r) > 1e-8 {
			t.Errorf("e = %g M = %g: residual %g", c.e, c.m, r)
		}
	}
}

func TestCircular(t *testing.T) {
	for _, d := range []float64{-720, -90, 0, 45, 180, 359, 1000} {
		M := unit.AngleFromDeg(d)
		E, err := anomaly.EccentricAnomaly(0, M)
		if err != nil {
			t.Fatal(err)
		}
		ν, err := anomaly.TrueAnomaly(0, E)
		if err != nil {
			t.Fatal(err)
		}
		if ν != M {
			t.Errorf("e = 0, M = %g°: ν = %g°", d, ν.Deg())
		}
	}
}

func TestScenarioEllipse(t *testing.T) {
	E, err := anomaly.EccentricAnomaly(.5, unit.AngleFromDeg(90))
	if err != nil {
		t.Fatal(err)
	}
	if r := E.Rad() - .5*math.Sin(E.Rad()) - math.Pi/2; math.Abs(r) > 1e-8 {
		t.Fatal("residual", r)
	}
	ν, err := anomaly.TrueAnomaly(.5, E)
	if err != nil {
		t.Fatal(err)
	}
	if d := ν.Deg(); d <= 90 || d >= 180 {
		t.Fatal("ν =", d)
	}
}

func TestNegativeMeanAnomaly(t *testing.T) {
	for _, e := range []float64{.1, .6, .95, 1.5, 4} {
		Ep, err := anomaly.EccentricAnomaly(e, unit.AngleFromDeg(30))
		if err != nil {
			t.Fatal(err)
		}
		En, err := anomaly.EccentricAnomaly(e, unit.AngleFromDeg(-30))
		if err != nil {
			t.Fatal(err)
		}
		if En != -Ep {
			t.Errorf("e = %g: E(-M) = %g, -E(M) = %g", e, En, -Ep)
		}
	}
}

func TestHyperbolicTrueAnomaly(t *testing.T) {
	e := 2.
	νInf := math.Acos(-1 / e)
	for _, m := range []float64{-100, -1, 0, .1, 10, 1e4} {
		H, err := anomaly.EccentricAnomaly(e, unit.Angle(m))
		if err != nil {
			t.Fatal(err)
		}
		ν, err := anomaly.TrueAnomaly(e, H)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(ν.Rad()) >= νInf {
			t.Errorf("M = %g: ν = %g beyond asymptote %g", m, ν.Rad(), νInf)
		}
		// cosh H = (e + cos ν) / (1 + e cos ν)
		c := math.Cos(ν.Rad())
		if !scalar.EqualWithinRel(math.Cosh(H.Rad()), (e+c)/(1+e*c), 1e-9) {
			t.Errorf("M = %g: H and ν inconsistent", m)
		}
	}
}

func TestDegenerate(t *testing.T) {
	var de *anomaly.DegenerateInputError
	if _, err := anomaly.EccentricAnomaly(1, 1); !errors.As(err, &de) {
		t.Error("EccentricAnomaly(1, ...) error:", err)
	}
	if _, err := anomaly.TrueAnomaly(1, 1); !errors.As(err, &de) {
		t.Error("TrueAnomaly(1, ...) error:", err)
	}
	if _, err := anomaly.MeanFromEccentric(1, 1); !errors.As(err, &de) {
		t.Error("MeanFromEccentric(1, ...) error:", err)
	}
	var dom *anomaly.DomainError
	if _, err := anomaly.EccentricAnomaly(-.1, 1); !errors.As(err, &dom) {
		t.Error("EccentricAnomaly(-.1, ...) error:", err)
	}
	if _, err := anomaly.EccentricAnomaly(math.NaN(), 1); !errors.As(err, &dom) {
		t.Error("EccentricAnomaly(NaN, ...) error:", err)
	}
}

func TestAcosh(t *testing.T) {
	for _, x := range []float64{1, .5, -2, math.NaN()} {
		var dom *anomaly.DomainError
		if _, err := anomaly.Acosh(x); !errors.As(err, &dom) {
			t.Errorf("Acosh(%g) error: %v", x, err)
		}
	}
	y, err := anomaly.Acosh(math.Cosh(2))
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(y, 2, 1e-12) {
		t.Fatal("Acosh(cosh 2) =", y)
	}
}
