package spinner

import (
	"context"
	"io"
	"log/slog"
)

// LogEvery is the line interval at which non-interactive progress is logged.
const LogEvery = 10000

// Progress reports how many lines of a source have been consumed: with a
// spinner on a terminal, otherwise as periodic info log records.
type Progress struct {
	name   string
	sp     *Spinner
	logged int
}

// NewProgress starts reporting progress for the source called name.
// A nil or non-terminal w, or quiet, disables the spinner.
func NewProgress(ctx context.Context, w io.Writer, name string, quiet bool) *Progress {
	p := &Progress{name: name}
	if !quiet && w != nil && Interactive(w) {
		p.sp = New(ctx, w, "processing "+name+" ...")
		p.sp.Start()
	}
	return p
}

// Lines records that n lines have been consumed so far.
func (p *Progress) Lines(n int) {
	if p.sp != nil {
		p.sp.Updatef("processing %s: %d lines", p.name, n)
		return
	}
	if n/LogEvery > p.logged/LogEvery {
		slog.Info("Processed lines", "source", p.name, "lines", n)
		p.logged = n
	}
}

// Done stops the spinner, if any.
func (p *Progress) Done() {
	if p.sp != nil {
		p.sp.Stop()
	}
}
