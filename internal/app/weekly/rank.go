package weekly

import (
	"sort"
	"time"

	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// Frequencies counts occurrences per track id over the raw,
// pre-dedupe track list. A track reposted by several followed artists
// counts once per appearance.
func Frequencies(tracks []track.Track) map[int64]int {
	freq := make(map[int64]int, len(tracks))
	for _, t := range tracks {
		freq[t.ID]++
	}
	return freq
}

// RankTracks orders the deduplicated tracks by descending occurrence
// frequency; ties break by descending play count, then by first-seen
// order. Returns the ordered track ids.
//
// Frequency is the primary "favorite" signal here: a track crossing
// the feed through multiple sources outranks a merely popular one.
func RankTracks(tracks []track.Track, freq map[int64]int) []int64 {
	unique := dedupeByID(tracks)
	sort.SliceStable(unique, func(i, j int) bool {
		fi, fj := freq[unique[i].ID], freq[unique[j].ID]
		if fi != fj {
			return fi > fj
		}
		return unique[i].Plays() > unique[j].Plays()
	})
	return track.UniqueIDs(unique)
}

// SortByPlayCount orders tracks by descending play count in place.
func SortByPlayCount(tracks []track.Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].Plays() > tracks[j].Plays()
	})
}

// SortByFollowerCount orders tracks by descending uploader follower
// count in place.
func SortByFollowerCount(tracks []track.Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].User.FollowersCount > tracks[j].User.FollowersCount
	})
}

// FilterByDate keeps tracks created strictly between start and end.
// Nil bounds are open-ended.
func FilterByDate(tracks []track.Track, start, end *time.Time) []track.Track {
	kept := make([]track.Track, 0, len(tracks))
	for _, t := range tracks {
		if start != nil && !t.CreatedAt.After(*start) {
			continue
		}
		if end != nil && !t.CreatedAt.Before(*end) {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

func dedupeByID(tracks []track.Track) []track.Track {
	seen := make(map[int64]struct{}, len(tracks))
	unique := make([]track.Track, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}
