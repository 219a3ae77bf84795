// Public domain.

package comet

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// ElsURL links to the present location of CometEls.txt, the MPC file of
// current comet orbits in the one-line format parsed by ParseLine.
var ElsURL = "https://www.minorplanetcenter.net/iau/MPCORB/CometEls.txt"

// Fetch gets a fresh copy of the data at ElsURL and writes it to a new
// file with the path and file name fn.
func Fetch(fn string) error {
	r, err := http.Get(ElsURL)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", ElsURL, r.Status)
	}
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, r.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LineError is returned by the function from Splitter for lines that do
// not parse.  Reading can continue after a LineError.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Splitter returns a function that reads one set of elements per call
// from r.  Blank lines are skipped.  The function returns io.EOF at the
// end of input, LineError for a line that does not parse, and any other
// error from reading r.
func Splitter(r io.Reader) func() (*Elements, error) {
	s := bufio.NewScanner(r)
	var n int
	return func() (*Elements, error) {
		for s.Scan() {
			n++
			line := s.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			el, err := ParseLine(line)
			if err != nil {
				return nil, LineError{n, err}
			}
			return el, nil
		}
		if err := s.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
}

// ReadFile reads all elements from a file of MPC one-line comet
// elements.  Lines that do not parse are quietly ignored.
func ReadFile(fn string) ([]*Elements, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var els []*Elements
	for next := Splitter(f); ; {
		el, err := next()
		switch err.(type) {
		case nil:
			els = append(els, el)
			continue
		case LineError:
			continue
		}
		if err == io.EOF {
			break
		}
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("no elements read from %s", fn)
	}
	return els, nil
}

// ParseLine parses comet elements in the MPC one-line format, documented
// at https://www.minorplanetcenter.net/iau/info/CometOrbitFormat.html.
//
// Columns through inclination (79) are required.  Epoch, magnitude
// parameters and name are optional.  An eccentricity of exactly 1 sets
// the Parabolic tag.
func ParseLine(line string) (*Elements, error) {
	if len(line) < 79 {
		return nil, fmt.Errorf("ParseLine: short line (%d characters)",
			len(line))
	}
	var el Elements
	el.Desig = strings.TrimSpace(line[:12])
	if el.Desig == "" {
		return nil, fmt.Errorf("ParseLine: missing designation")
	}

	var err error
	if el.TimeP, err = parseDate(line[14:18], line[19:21], line[22:29]); err != nil {
		return nil, fmt.Errorf("ParseLine: invalid perihelion date (%s), %v",
			line[14:29], err)
	}
	f := func(field, what string) (v float64) {
		if err != nil {
			return
		}
		v, err = strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			err = fmt.Errorf("ParseLine: invalid %s (%s), %v", what, field, err)
		}
		return
	}
	el.PDis = f(line[30:39], "perihelion distance")
	el.Ecc = f(line[41:49], "eccentricity")
	el.ArgP = unit.AngleFromDeg(f(line[51:59], "argument of perihelion"))
	el.Node = unit.AngleFromDeg(f(line[61:69], "node"))
	el.Inc = unit.AngleFromDeg(f(line[71:79], "inclination"))
	if err != nil {
		return nil, err
	}
	el.Parabolic = el.Ecc == 1

	if ep := field(line, 81, 89); ep != "" {
		if len(ep) != 8 {
			return nil, fmt.Errorf("ParseLine: invalid epoch (%s)", ep)
		}
		if el.Epoch, err = parseDate(ep[:4], ep[4:6], ep[6:]); err != nil {
			return nil, fmt.Errorf("ParseLine: invalid epoch (%s), %v", ep, err)
		}
	}
	if h := field(line, 91, 95); h != "" {
		el.H = f(h, "absolute magnitude")
	}
	if g := field(line, 96, 100); g != "" {
		el.G = f(g, "slope parameter")
	}
	if err != nil {
		return nil, err
	}
	el.Name = field(line, 102, 158)
	if err = el.Validate(); err != nil {
		return nil, fmt.Errorf("ParseLine: %v", err)
	}
	return &el, nil
}

// field returns trimmed line[a:b], or as much of it as line holds.
func field(line string, a, b int) string {
	if len(line) <= a {
		return ""
	}
	if len(line) < b {
		b = len(line)
	}
	return strings.TrimSpace(line[a:b])
}

// parseDate converts year, month and fractional day fields to a
// Julian day.
func parseDate(ys, ms, ds string) (float64, error) {
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(strings.TrimSpace(ms))
	if err != nil {
		return 0, err
	}
	if m < 1 || m > 12 {
		return 0, fmt.Errorf("month %d", m)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(ds), 64)
	if err != nil {
		return 0, err
	}
	if d < 1 || d >= 32 {
		return 0, fmt.Errorf("day %g", d)
	}
	return julian.CalendarGregorianToJD(y, m, d), nil
}
