package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/mangasrc/internal/util"
)

type Stats struct {
	TotalImages   atomic.Int64
	TotalBytes    atomic.Int64
	TotalChapters atomic.Int64
	Failed        atomic.Int64
}

func (s *Stats) Print(w io.Writer, elapsed time.Duration) {
	fmt.Fprintln(w, "Download Summary:")
	fmt.Fprintf(w, "Chapters: %d\n", s.TotalChapters.Load())
	if f := s.Failed.Load(); f > 0 {
		fmt.Fprintf(w, "Failed:   %d\n", f)
	}
	fmt.Fprintf(w, "Images:   %d\n", s.TotalImages.Load())
	fmt.Fprintf(w, "Data:     %s\n", util.Human(s.TotalBytes.Load()))
	fmt.Fprintf(w, "Time:     %s\n", elapsed.Round(time.Second))
}
