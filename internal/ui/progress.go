package ui

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/mangasrc/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress renders one bar per chapter being downloaded.
type Progress struct {
	p *mpb.Progress
}

func NewProgress(w io.Writer) *Progress {
	return &Progress{p: mpb.New(
		mpb.WithWidth(48),
		mpb.WithOutput(w),
		mpb.WithRefreshRate(150*time.Millisecond),
	)}
}

// Wait blocks until every bar has completed and flushes the output.
func (pm *Progress) Wait() {
	pm.p.Wait()
}

// Chapter adds a bar for a chapter with the given number of pages.
func (pm *Progress) Chapter(label string, pages int) *ChapterBar {
	b := &ChapterBar{}
	b.total.Store(int64(pages))

	b.bar = pm.p.New(
		int64(pages),
		mpb.BarStyle().Lbound("[").Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(label, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("%d/%d pages", decor.WCSyncWidth),
			decor.Any(func(decor.Statistics) string {
				return " | " + util.Human(b.bytes.Load())
			}, decor.WCSyncWidth),
			decor.OnComplete(
				decor.Elapsed(decor.ET_STYLE_GO, decor.WC{W: 8}),
				" done",
			),
		),
	)

	return b
}

// ChapterBar satisfies downloader.Progress.
type ChapterBar struct {
	bar   *mpb.Bar
	total atomic.Int64
	bytes atomic.Int64
	done  atomic.Bool
}

func (b *ChapterBar) Update(done, total int, bytes int64) {
	if b.done.Load() {
		return
	}

	if total > 0 && int64(total) != b.total.Load() {
		b.total.Store(int64(total))
		b.bar.SetTotal(int64(total), false)
	}

	b.bytes.Store(bytes)
	b.bar.SetCurrent(int64(done))
}

// MarkDone completes the bar even when some pages were skipped.
func (b *ChapterBar) MarkDone() {
	if b.done.Swap(true) {
		return
	}

	total := b.total.Load()
	b.bar.SetCurrent(total)
	b.bar.SetTotal(total, true)
}
