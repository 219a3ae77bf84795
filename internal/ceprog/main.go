// Public domain.

package ceprog

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/mpcformat"
	"github.com/soniakeys/observation"

	"github.com/soniakeys/cometeph/internal/comet"
	"github.com/soniakeys/cometeph/internal/ephem"
	"github.com/soniakeys/cometeph/internal/orbit"
)

const versionString = "cometeph version 0.1 Go source."
const copyrightString = "Public domain."

// geocentric site code
const geocenter = "500"

func Main() {
	defer exit.Handler()

	// these functions all terminate on error
	cl := parseCommandLine()
	j := readJob(cl)
	par := readSite(cl, j)
	f := openElements(cl, j)
	defer f.Close()

	k := orbit.New(orbit.IAU2012)
	r := &reporter{k: k, eph: ephem.New(k, par), job: j}

	// elCh supplies elements by reading the elements file.  It is fed by
	// splitter, running as a separate goroutine.  If splitter encounters
	// an error reading the file, it reports the error on errCh and
	// terminates immediately.
	elCh := make(chan *comet.Elements)
	errCh := make(chan error)
	go splitter(f, j.Desig, elCh, errCh)

	// headings, delayed until now to avoid printing them only to terminate
	// with an error message if some initialization fails.
	if !j.NoHeadings {
		fmt.Println(versionString)
		fmt.Printf("Site %s, %s to %s step %g days\n", j.Site,
			j.Start.Format(dateFormat), j.End.Format(dateFormat), j.Step)
	}
	n, err := process(elCh, errCh, os.Stdout, r.report)
	if err != nil {
		exit.Log(err)
	}
	if n == 0 {
		if j.Desig > "" {
			exit.Log("no comet matching " + j.Desig)
		}
		exit.Log("no comets in " + f.Name())
	}
}

type elSeq struct {
	el  *comet.Elements
	rch chan string
}

// process computes reports for all elements received on elCh, writing
// them to w in the order received.  It returns the number of reports
// written and any error received on errCh.
func process(elCh <-chan *comet.Elements, errCh <-chan error, w io.Writer,
	work func(*comet.Elements) string) (int, error) {
	// prCh is used to keep processed results in submission order.
	// it is a buffered channel so that a fast worker can drop off the
	// result without waiting for workers ahead of it.  the size of
	// the buffer must be at least maxWorkers.  larger lets more results
	// back up behind a slow worker.
	maxWorkers := runtime.GOMAXPROCS(0)
	prCh := make(chan chan string, maxWorkers*2)
	seqCh := make(chan *elSeq)

	// "dispatcher," dispatches elements to workers.
	// for each comet, attach a return channel that works like a ticket
	// for picking up the result.  wait for an available worker, send the
	// elements to the worker and drop the ticket in the queue for
	// printing.
	go func() {
		for el := range elCh {
			rch := make(chan string, 1)
			seqCh <- &elSeq{el, rch}
			prCh <- rch
		}
		close(seqCh)
		close(prCh)
	}()

	// workers are started only as the dispatcher calls for them.
	// there may be more cores than comets.
	go func() {
		for n := 0; n < maxWorkers; n++ {
			s, ok := <-seqCh
			if !ok {
				return
			}
			go worker(s, seqCh, work)
		}
	}()

	// wait for results and print them as they are available.  prCh is
	// the channel of result channels in the correct order.
	var n int
	for {
		select {
		case err := <-errCh:
			return n, err
		case rch, ok := <-prCh:
			if !ok {
				return n, nil // normal return
			}
			select {
			case err := <-errCh:
				return n, err
			case r := <-rch:
				fmt.Fprint(w, r)
				n++
			}
		}
	}
}

// worker computes reports until seqCh is closed.  the first comet is
// passed as s.
func worker(s *elSeq, seqCh <-chan *elSeq, work func(*comet.Elements) string) {
	for ok := true; ok; s, ok = <-seqCh {
		s.rch <- work(s.el) // buffered.  drop off result and continue
	}
}

// lines that do not parse are dropped without notification.
func splitter(r io.Reader, desig string, elCh chan<- *comet.Elements, errCh chan<- error) {
	for next := comet.Splitter(r); ; {
		el, err := next()
		if err == nil {
			if match(el, desig) {
				elCh <- el
			}
			continue
		}
		if err == io.EOF {
			break
		}
		if _, ok := err.(comet.LineError); ok {
			continue
		}
		errCh <- err
		break
	}
	close(elCh)
}

// match reports whether el is selected by desig.  An empty desig selects
// all comets, otherwise desig must equal the packed designation or begin
// the readable name.
func match(el *comet.Elements, desig string) bool {
	return desig == "" || el.Desig == desig ||
		strings.HasPrefix(el.Name, desig)
}

type commandLine struct {
	dj string // job file
	de string // elements file
	do string // obscode file
	dp string // default path
}

func parseCommandLine() *commandLine {
	var cl commandLine
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	flag.StringVar(&cl.de, "e", "", "")
	flag.StringVar(&cl.do, "o", "", "")
	flag.StringVar(&cl.dp, "p", ".", "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: cometeph [options] <jobfile>   compute ephemerides for a job
       cometeph -h                    display help and quick reference
       cometeph -v                    display version and copyright

Options:
       -e <elements-file>
       -o <obscode-file>
       -p <path>

Default:
       -p=.
`)
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	case flag.NArg() != 1:
		flag.Usage()
		os.Exit(1)
	}
	cl.dj = flag.Arg(0)
	return &cl
}

func (cl *commandLine) fixupCP(fnSpec, fnDefault string) string {
	if fnSpec > "" {
		return fnSpec
	}
	return filepath.Join(cl.dp, fnDefault)
}

// readSite returns parallax constants for the job site, nil for the
// geocenter.
func readSite(cl *commandLine, j *job) *observation.ParallaxConst {
	if j.Site == geocenter {
		return nil
	}
	ocdFile := cl.fixupCP(cl.do, "obscode.dat")
	ocdMap, readErr := mpcformat.ReadObscodeDatFile(ocdFile)
	if readErr != nil {
		// that didn't work.  try getting a fresh copy.
		if err := mpcformat.FetchObscodeDat(ocdFile); err != nil {
			log.Println(readErr) // show error from read attempt,
			exit.Log(err)        // and error from download attempt
		}
		if ocdMap, readErr = mpcformat.ReadObscodeDatFile(ocdFile); readErr != nil {
			exit.Log(readErr)
		}
	}
	par, ok := ocdMap[j.Site]
	if !ok {
		exit.Log("site " + j.Site + " unknown")
	}
	return par
}

// openElements opens the comet elements file, downloading a fresh copy
// if it cannot be opened.
func openElements(cl *commandLine, j *job) *os.File {
	fn := cl.de
	if fn == "" {
		if fn = j.Elements; !filepath.IsAbs(fn) {
			fn = filepath.Join(cl.dp, fn)
		}
	}
	f, openErr := os.Open(fn)
	if openErr == nil {
		return f
	}
	if err := comet.Fetch(fn); err != nil {
		log.Println(openErr)
		exit.Log(err)
	}
	if f, openErr = os.Open(fn); openErr != nil {
		exit.Log(openErr)
	}
	return f
}

func printHelp() {
	fmt.Println(`
Cometeph computes two-body ephemerides of comets from osculating elements.
Input is a job file naming a date range and observing site, and a file of
comet elements in the MPC one-line format.  Output is an ephemeris table
for each comet preceded by a summary of its orbit.

Job file keys (TOML):
   Desig        packed designation or start of name, empty for all
   Start        first date, as a TOML datetime
   End          last date, defaults to Start
   Step         days between lines, defaults to 1.0
   Site         MPC observatory code, defaults to 500 (geocenter)
   Elements     elements file, defaults to CometEls.txt
   NoHeadings   true suppresses the heading lines

For full documentation:
   go doc github.com/soniakeys/cometeph`)
}
