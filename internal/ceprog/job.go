// Public domain.

package ceprog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/naoina/toml"
	"github.com/soniakeys/exit"
	"github.com/soniakeys/meeus/v3/julian"
)

// job is the content of a job file.
type job struct {
	Desig      string
	Start, End time.Time
	Step       float64 // days
	Site       string
	Elements   string
	NoHeadings bool
}

const dateFormat = "2006-01-02 15:04"

// readJob reads the job file named on the command line.
func readJob(cl *commandLine) *job {
	td, err := os.ReadFile(cl.dj)
	if err != nil {
		exit.Log(err)
	}
	j, err := parseJob(td)
	if err != nil {
		exit.Log(fmt.Sprintf("%s: %v", cl.dj, err))
	}
	return j
}

// parseJob decodes a job and fills in defaults.
func parseJob(td []byte) (*job, error) {
	var j job
	if err := toml.Unmarshal(td, &j); err != nil {
		return nil, err
	}
	// show stopper validations
	if j.Start.IsZero() {
		return nil, errors.New("no Start")
	}
	if j.End.IsZero() {
		j.End = j.Start
	}
	if j.End.Before(j.Start) {
		return nil, errors.New("End before Start")
	}
	switch {
	case j.Step == 0:
		j.Step = 1
	case j.Step < 0:
		return nil, errors.New("negative Step")
	}
	j.Desig = strings.TrimSpace(j.Desig)
	if j.Site = strings.TrimSpace(j.Site); j.Site == "" {
		j.Site = geocenter
	}
	if j.Elements == "" {
		j.Elements = "CometEls.txt"
	}
	return &j, nil
}

// span returns the job date range as Julian days.
func (j *job) span() (start, end float64) {
	return julian.TimeToJD(j.Start), julian.TimeToJD(j.End)
}
