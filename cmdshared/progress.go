package cmdshared

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// Progress is a counting progress bar. The zero value draws nothing.
type Progress struct {
	progress *mpb.Progress
	bar      *mpb.Bar
}

// NewProgress draws a bar on stderr if it is a terminal
func NewProgress(name string, total int) *Progress {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return &Progress{}
	}
	return NewProgressBar(os.Stderr, name, total)
}

// NewProgressBar draws a bar counting up to total on out. Nothing is drawn for an empty total.
func NewProgressBar(out io.Writer, name string, total int) *Progress {
	if total <= 0 {
		return &Progress{}
	}
	p := mpb.New(mpb.WithOutput(out), mpb.WithWidth(40))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(decor.Name(name+" "), decor.CountersNoUnit("%d / %d")),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return &Progress{progress: p, bar: bar}
}

// Active reports whether a bar is drawn
func (p *Progress) Active() bool {
	return p.bar != nil
}

// Increment is safe for concurrent use
func (p *Progress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Done completes the bar wherever it stands and waits for the last render.
// It must be called once the work is over, also when the work failed.
func (p *Progress) Done() {
	if p.progress == nil {
		return
	}
	p.bar.SetTotal(-1, true)
	p.progress.Wait()
}
