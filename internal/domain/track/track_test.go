package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrack_Artist(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  string
	}{
		{
			name: "publisher artist takes precedence",
			track: Track{
				User:              User{Username: "uploader"},
				PublisherMetadata: &PublisherMetadata{Artist: "Declared Artist"},
			},
			want: "Declared Artist",
		},
		{
			name: "empty publisher artist falls back to uploader",
			track: Track{
				User:              User{Username: "uploader"},
				PublisherMetadata: &PublisherMetadata{},
			},
			want: "uploader",
		},
		{
			name:  "no publisher metadata falls back to uploader",
			track: Track{User: User{Username: "uploader"}},
			want:  "uploader",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.track.Artist())
		})
	}
}

func TestTrack_Plays(t *testing.T) {
	count := int64(42)
	withCount := Track{PlaybackCount: &count}
	assert.Equal(t, int64(42), withCount.Plays())

	withoutCount := Track{}
	assert.Equal(t, int64(0), withoutCount.Plays())
}

func TestTrack_Duration(t *testing.T) {
	tr := Track{DurationMS: 600_000}
	assert.Equal(t, 600.0, tr.Duration().Seconds())

	missing := Track{}
	assert.Zero(t, missing.Duration())
}

func TestUniqueIDs(t *testing.T) {
	tracks := []Track{{ID: 3}, {ID: 1}, {ID: 3}, {ID: 2}, {ID: 1}}
	assert.Equal(t, []int64{3, 1, 2}, UniqueIDs(tracks))

	assert.Empty(t, UniqueIDs(nil))
}
