package sheets

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/cheggaaa/pb"
)

// progress draws the download on the terminal.
type progress interface {
	wrap(r io.Reader) io.Reader
	finish()
}

// newProgress returns a bar when the size of the download is known and a
// spinner otherwise; the spreadsheet export is usually sent chunked.
func newProgress(length int64) progress {
	if length > 0 {
		return &barProgress{bar: pb.Full.Start64(length)}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " descargando hoja de cálculo"
	s.Start()
	return &spinnerProgress{spinner: s}
}

type barProgress struct {
	bar *pb.ProgressBar
}

func (p *barProgress) wrap(r io.Reader) io.Reader {
	return p.bar.NewProxyReader(r)
}

func (p *barProgress) finish() {
	p.bar.Finish()
}

type spinnerProgress struct {
	spinner *spinner.Spinner
}

func (p *spinnerProgress) wrap(r io.Reader) io.Reader {
	return r
}

func (p *spinnerProgress) finish() {
	p.spinner.Stop()
}
