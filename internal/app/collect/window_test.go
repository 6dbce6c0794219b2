package collect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindow_Contains(t *testing.T) {
	start := time.Date(2025, 8, 24, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 31, 8, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: end}

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{name: "strictly inside", ts: start.Add(24 * time.Hour), want: true},
		{name: "just after start", ts: start.Add(time.Nanosecond), want: true},
		{name: "just before end", ts: end.Add(-time.Nanosecond), want: true},
		{name: "exactly at start is excluded", ts: start, want: false},
		{name: "exactly at end is excluded", ts: end, want: false},
		{name: "before the window", ts: start.Add(-time.Hour), want: false},
		{name: "after the window", ts: end.Add(time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Contains(tt.ts))
		})
	}
}

func TestWindow_Bisect(t *testing.T) {
	start := time.Date(2025, 8, 24, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 31, 8, 0, 0, 0, time.UTC)
	mid := time.Date(2025, 8, 27, 20, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: end}

	first := w.Bisect(HalfFirst)
	assert.Equal(t, Window{Start: start, End: mid}, first)

	second := w.Bisect(HalfSecond)
	assert.Equal(t, Window{Start: mid, End: end}, second)

	assert.Equal(t, w, w.Bisect(""))
}

func TestWindow_String(t *testing.T) {
	w := Window{
		Start: time.Date(2025, 8, 24, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 8, 31, 8, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2025-08-24 - 2025-08-31", w.String())
}
