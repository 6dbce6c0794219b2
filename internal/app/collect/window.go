package collect

import (
	"fmt"
	"time"
)

// Half selects one half of a bisected window.
type Half string

const (
	HalfFirst  Half = "first"
	HalfSecond Half = "second"
)

// Window is a time interval with strictly exclusive bounds.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls strictly inside the window.
// Timestamps exactly on a boundary are excluded.
func (w Window) Contains(t time.Time) bool {
	return t.After(w.Start) && t.Before(w.End)
}

// Bisect narrows the window to its first or second half. An empty
// half returns the window unchanged.
func (w Window) Bisect(half Half) Window {
	mid := w.Start.Add(w.End.Sub(w.Start) / 2)
	switch half {
	case HalfFirst:
		return Window{Start: w.Start, End: mid}
	case HalfSecond:
		return Window{Start: mid, End: w.End}
	}
	return w
}

func (w Window) String() string {
	return fmt.Sprintf("%s - %s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}
