package main

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// progressSpinner renders progress callbacks as an animated terminal line
// with a percentage prefix.
type progressSpinner struct {
	s *spinner.Spinner
}

func newProgressSpinner(w io.Writer) *progressSpinner {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
	s.Start()
	return &progressSpinner{s: s}
}

// update is a scrapeall.ProgressFunc.
func (p *progressSpinner) update(fraction float64, message string) {
	p.s.Suffix = fmt.Sprintf(" %3.0f%% %s", fraction*100, message)
}

func (p *progressSpinner) stop() {
	p.s.Stop()
}
