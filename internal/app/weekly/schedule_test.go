package weekly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduledTime(t *testing.T) {
	// 2025-08-31 is a Sunday.
	sunday := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		now   time.Time
		day   time.Weekday
		weeks int
		want  time.Time
	}{
		{
			name: "same weekday returns that day, not a week earlier",
			now:  sunday.Add(10 * time.Hour), // Sunday 10:00
			day:  time.Sunday,
			want: sunday.Add(8 * time.Hour),
		},
		{
			name: "same weekday exactly at the scheduled hour",
			now:  sunday.Add(8 * time.Hour),
			day:  time.Sunday,
			want: sunday.Add(8 * time.Hour),
		},
		{
			name: "monday resolves to the day before",
			now:  time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
			day:  time.Sunday,
			want: sunday.Add(8 * time.Hour),
		},
		{
			name: "saturday resolves to the previous sunday",
			now:  time.Date(2025, 9, 6, 23, 0, 0, 0, time.UTC),
			day:  time.Sunday,
			want: sunday.Add(8 * time.Hour),
		},
		{
			name:  "negative weeks shift back",
			now:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
			day:   time.Sunday,
			weeks: -1,
			want:  time.Date(2025, 8, 24, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "positive weeks shift forward",
			now:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
			day:   time.Sunday,
			weeks: 1,
			want:  time.Date(2025, 9, 7, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "other weekday target",
			now:  time.Date(2025, 9, 4, 6, 0, 0, 0, time.UTC), // Thursday
			day:  time.Wednesday,
			want: time.Date(2025, 9, 3, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScheduledTime(tt.now, tt.day, tt.weeks))
		})
	}
}

func TestWeekOfMonth(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{
			name: "first of month on a wednesday",
			date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "eighth of the same month",
			date: time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "first of month on a sunday",
			date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "monday after a sunday month start",
			date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "end of a long month",
			date: time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekOfMonth(tt.date))
		})
	}
}
