// Package collect gathers a user's SoundCloud activity (reposts,
// followed-artist comments, likes) across paginated API endpoints,
// applying the temporal window per page.
package collect

import (
	"context"
	"strconv"

	zlog "github.com/rs/zerolog/log"

	"github.com/scbox/soundcloud-weekly/internal/domain/stream"
)

// OffsetPageFunc fetches one page of an endpoint that takes plain
// numeric offsets.
type OffsetPageFunc[T any] func(ctx context.Context, limit, offset int) (stream.Page[T], error)

// CursorPageFunc fetches one page of an endpoint whose continuation
// offset is threaded through the previous page's next_href.
type CursorPageFunc[T any] func(ctx context.Context, limit int, offset string) (stream.Page[T], error)

// AllByOffset drains an offset-paginated endpoint, keeping items that
// pass keep and advancing the offset by limit itself.
//
// Because keep filters client-side, an empty filtered page does not
// prove end-of-stream: the traversal tolerates up to tolerance
// consecutive empty pages before anything has matched, and stops on
// the first empty page once something has.
func AllByOffset[T any](ctx context.Context, fetch OffsetPageFunc[T], keep func(T) bool, limit, tolerance int) ([]T, error) {
	var all []T
	offset, emptyPages := 0, 0
	for {
		page, err := fetch(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		kept := filterItems(page.Collection, keep)
		all = append(all, kept...)
		zlog.Info().Msgf("found %d matching items (offset=%d, total=%d)", len(kept), offset, len(all))

		if len(kept) == 0 {
			if len(all) > 0 {
				break
			}
			emptyPages++
			if emptyPages > tolerance {
				break
			}
		}
		offset += limit
	}
	return all, nil
}

// AllByCursor drains a cursor-paginated endpoint, keeping items that
// pass keep. The traversal stops on the first empty filtered page or
// when the endpoint returns no continuation cursor.
func AllByCursor[T any](ctx context.Context, fetch CursorPageFunc[T], keep func(T) bool, limit int) ([]T, error) {
	var all []T
	offset := ""
	for {
		page, err := fetch(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		kept := filterItems(page.Collection, keep)
		all = append(all, kept...)
		zlog.Info().Msgf("found %d matching items (offset=%s, total=%d)", len(kept), strconv.Quote(offset), len(all))

		if len(kept) == 0 {
			break
		}
		next := page.NextOffset()
		if next == "" {
			break
		}
		offset = next
	}
	return all, nil
}

func filterItems[T any](items []T, keep func(T) bool) []T {
	if keep == nil {
		return items
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
