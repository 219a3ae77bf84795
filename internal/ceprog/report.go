// Public domain.

package ceprog

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/sexagesimal"

	"github.com/soniakeys/cometeph/internal/comet"
	"github.com/soniakeys/cometeph/internal/ephem"
	"github.com/soniakeys/cometeph/internal/orbit"
)

// reporter builds the report for one comet.  It holds no mutable state
// and is shared by all workers.
type reporter struct {
	k   *orbit.Kinematics
	eph *ephem.Ephemeris
	job *job
}

const tableHeading = "      Date            RA            Dec         Delta      r     Elong  Mag   km/s\n"

// report returns the orbit summary and ephemeris table for el.
// Computation errors are reported in place of the lines they affect.
func (r *reporter) report(el *comet.Elements) string {
	var b strings.Builder
	r.summary(&b, el)
	b.WriteString(tableHeading)
	start, end := r.job.span()
	ens, err := r.eph.Range(el, start, end, r.job.Step)
	for _, en := range ens {
		r.line(&b, el, en)
	}
	if err != nil {
		fmt.Fprintf(&b, " ** %v\n", err)
	}
	b.WriteByte('\n')
	return b.String()
}

func (r *reporter) summary(b *strings.Builder, el *comet.Elements) {
	name := el.Name
	if name == "" {
		name = el.Desig
	}
	fmt.Fprintf(b, "%s  (%s)\n", name, el.Desig)
	reg := el.Regime().String()
	if el.NearParabolic() {
		reg += ", near parabolic"
	}
	fmt.Fprintf(b, "  q %.6f  e %.6f  %s\n", el.PDis, el.Ecc, reg)
	fmt.Fprintf(b, "  T %s  i %.4f  Ω %.4f  ω %.4f\n",
		julian.JDToTime(el.TimeP).Format(dateFormat),
		el.Inc.Deg(), el.Node.Deg(), el.ArgP.Deg())
	fmt.Fprintf(b, "  1/a %.6f", orbit.ReciprocalAxis(el))
	if a, err := orbit.SemiMajorAxis(el); err == nil {
		fmt.Fprintf(b, "  a %.4f", a)
	}
	if p, err := r.k.Period(el); err == nil {
		fmt.Fprintf(b, "  P %.2f years", p)
	}
	b.WriteByte('\n')
}

func (r *reporter) line(b *strings.Builder, el *comet.Elements, en *ephem.Entry) {
	mag := "    "
	if !math.IsNaN(en.Mag) {
		mag = fmt.Sprintf("%4.1f", en.Mag)
	}
	speed := "      "
	if s, err := r.k.State(el, en.JD-en.LightTime); err == nil {
		speed = fmt.Sprintf("%6.2f", r.k.Speed(s.Vel))
	}
	fmt.Fprintf(b, "%s  %2v  %2v  %7.4f  %7.4f  %5.1f  %s  %s\n",
		julian.JDToTime(en.JD).Format(dateFormat),
		sexa.FmtRA(en.RA),
		sexa.FmtAngle(en.Dec),
		en.Delta, en.R, en.Elong.Deg(), mag, speed)
}
