// Public domain.

package ceprog

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/cometeph/internal/comet"
	"github.com/soniakeys/cometeph/internal/ephem"
	"github.com/soniakeys/cometeph/internal/orbit"
)

const (
	halley  = "0001P         1986 02  5.4687  0.574457  0.967923  112.2415   59.8601  162.1865  19860205   4.0  6.0  1P/Halley                                                NK 1386"
	leonard = "    C2021A1   2022 01  3.1788  0.617954  1.000337  225.1633  255.9179  132.7993  20211209   8.0  2.0  C/2021 A1 (Leonard)                                      MPC 75006"
)

func TestParseJob(t *testing.T) {
	j, err := parseJob([]byte(`
Desig = "C/2021 A1"
Start = 2021-12-10T00:00:00Z
End = 2021-12-14T00:00:00Z
Step = 2.0
`))
	if err != nil {
		t.Fatal(err)
	}
	if j.Desig != "C/2021 A1" || j.Step != 2 || j.Site != geocenter ||
		j.Elements != "CometEls.txt" || j.NoHeadings {
		t.Fatalf("%+v", j)
	}
	start, end := j.span()
	if math.Abs(start-2459558.5) > 1e-9 || math.Abs(end-2459562.5) > 1e-9 {
		t.Fatal("span", start, end)
	}

	j, err = parseJob([]byte(`
Start = 2021-12-10T00:00:00Z
Site = "644"
NoHeadings = true
`))
	if err != nil {
		t.Fatal(err)
	}
	if !j.End.Equal(j.Start) || j.Step != 1 || j.Site != "644" || !j.NoHeadings {
		t.Fatalf("%+v", j)
	}
}

func TestParseJobErrors(t *testing.T) {
	for _, td := range []string{
		`Site = "500"`,
		"Start = 2021-12-10T00:00:00Z\nEnd = 2021-12-01T00:00:00Z",
		"Start = 2021-12-10T00:00:00Z\nStep = -1.0",
		"Start = ",
	} {
		if _, err := parseJob([]byte(td)); err == nil {
			t.Errorf("no error for %q", td)
		}
	}
}

func TestMatch(t *testing.T) {
	el, err := comet.ParseLine(halley)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		desig string
		want  bool
	}{
		{"", true},
		{"0001P", true},
		{"1P", true},
		{"1P/Halley", true},
		{"0002P", false},
		{"Halley", false},
	} {
		if got := match(el, c.desig); got != c.want {
			t.Errorf("match %q = %t", c.desig, got)
		}
	}
}

func TestSplitter(t *testing.T) {
	in := strings.Join([]string{halley, "garbage", leonard}, "\n")
	elCh := make(chan *comet.Elements)
	errCh := make(chan error)
	go splitter(strings.NewReader(in), "C/2021", elCh, errCh)
	var got []string
	for el := range elCh {
		got = append(got, el.Desig)
	}
	if len(got) != 1 || got[0] != "C2021A1" {
		t.Fatal(got)
	}
}

// results come out in input order however long each one takes
func TestProcessOrder(t *testing.T) {
	const n = 40
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	delay := make([]time.Duration, n)
	for i := range delay {
		delay[i] = time.Duration(rnd.Float64() * float64(2*time.Millisecond))
	}
	elCh := make(chan *comet.Elements)
	go func() {
		for i := 0; i < n; i++ {
			elCh <- &comet.Elements{Desig: fmt.Sprint(i)}
		}
		close(elCh)
	}()
	var w bytes.Buffer
	got, err := process(elCh, make(chan error), &w,
		func(el *comet.Elements) string {
			var i int
			fmt.Sscan(el.Desig, &i)
			time.Sleep(delay[i])
			return el.Desig + "\n"
		})
	if err != nil || got != n {
		t.Fatal(got, err)
	}
	var want strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintln(&want, i)
	}
	if w.String() != want.String() {
		t.Fatalf("out of order:\n%s", w.String())
	}
}

func TestProcessEmpty(t *testing.T) {
	elCh := make(chan *comet.Elements)
	close(elCh)
	n, err := process(elCh, make(chan error), &bytes.Buffer{},
		func(*comet.Elements) string { return "x" })
	if n != 0 || err != nil {
		t.Fatal(n, err)
	}
}

func TestProcessError(t *testing.T) {
	elCh := make(chan *comet.Elements)
	errCh := make(chan error)
	readErr := errors.New("read failure")
	go func() { errCh <- readErr }()
	_, err := process(elCh, errCh, &bytes.Buffer{},
		func(*comet.Elements) string { return "x" })
	if err != readErr {
		t.Fatal(err)
	}
}

func TestReport(t *testing.T) {
	j, err := parseJob([]byte(`
Start = 2021-12-10T00:00:00Z
End = 2021-12-12T00:00:00Z
`))
	if err != nil {
		t.Fatal(err)
	}
	k := orbit.New(orbit.IAU2012)
	r := &reporter{k: k, eph: ephem.New(k, nil), job: j}
	for _, c := range []struct {
		line string
		want []string
	}{
		{halley, []string{"1P/Halley  (0001P)", "elliptical", "P 75.79 years",
			"a 17.9087"}},
		{leonard, []string{"C/2021 A1 (Leonard)", "hyperbolic, near parabolic",
			"2021-12-11 00:00"}},
	} {
		el, err := comet.ParseLine(c.line)
		if err != nil {
			t.Fatal(err)
		}
		rep := r.report(el)
		for _, w := range c.want {
			if !strings.Contains(rep, w) {
				t.Errorf("report lacks %q:\n%s", w, rep)
			}
		}
		if strings.Contains(rep, "\n ** ") {
			t.Errorf("error in report:\n%s", rep)
		}
		// summary, heading, three dates, blank
		if n := strings.Count(rep, "\n"); n != 4+1+3+1 {
			t.Errorf("%d lines:\n%s", n, rep)
		}
	}
}
