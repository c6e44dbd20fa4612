// Package progress draws an optional stderr bar over the bytes of the read
// file consumed so far.
package progress

import (
	"io"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// refreshEvery is how many reads pass between bar updates.
const refreshEvery = 256

// Bar tracks one classify run. Tick may be called from the goroutine that
// applies reads; the bar renders on its own goroutine.
type Bar struct {
	p     *mpb.Progress
	bar   *mpb.Bar
	bytes func() int64
	reads atomic.Int64
}

// New starts a bar on out. total is the input size in bytes; 0 means unknown
// (stdin), which draws a spinner instead. bytes reports raw bytes read.
func New(out io.Writer, total int64, bytes func() int64) *Bar {
	b := &Bar{bytes: bytes}
	b.p = mpb.New(mpb.WithWidth(40), mpb.WithOutput(out))

	readsDecor := decor.Any(func(decor.Statistics) string {
		return humanize.Comma(b.reads.Load()) + " reads"
	}, decor.WCSyncSpaceR)

	if total > 0 {
		b.bar = b.p.AddBar(total,
			mpb.PrependDecorators(
				decor.Name("classifying: ", decor.WC{W: len("classifying: "), C: decor.DindentRight}),
				readsDecor,
				decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
				decor.AverageETA(decor.ET_STYLE_GO),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)
		return b
	}
	b.bar = b.p.New(0, mpb.SpinnerStyle(),
		mpb.PrependDecorators(
			decor.Name("classifying: "),
			readsDecor,
			decor.CurrentKibiByte("% .1f"),
		),
		mpb.AppendDecorators(decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO), ". done")),
	)
	return b
}

// Tick records the running read count; it fits classify.Classifier.OnProgress.
func (b *Bar) Tick(reads int) {
	b.reads.Store(int64(reads))
	if reads%refreshEvery == 0 {
		b.bar.SetCurrent(b.bytes())
	}
}

// Done stops the bar and waits for the final render. A run that did not
// complete leaves the bar where it stopped.
func (b *Bar) Done(completed bool) {
	b.bar.SetCurrent(b.bytes())
	if completed {
		b.bar.SetTotal(-1, true)
	} else {
		b.bar.Abort(false)
	}
	b.p.Wait()
}
