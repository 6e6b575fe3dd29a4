package pagination

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DefaultPageSize is the batch size requested per page.
const DefaultPageSize = 100

// FetchPage returns one batch of items starting at the given offset. The
// batch may be shorter than limit on the final page.
type FetchPage[T any] func(ctx context.Context, start, limit int) ([]T, error)

// Collect fetches pages with increasing offsets until the endpoint is
// exhausted and returns the concatenated items in source order.
//
// Termination: an empty batch or a batch shorter than pageSize ends the
// sequence. There is no upper bound on the offset; an endpoint that keeps
// returning exactly pageSize items will be polled forever. That is the
// endpoint's contract to keep, not this package's to police. Note the
// inverse risk too: a short page mid-sequence (for example a transiently
// filtered result) silently truncates the collection.
func Collect[T any](ctx context.Context, pageSize int, fetch FetchPage[T]) ([]T, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var items []T
	pages := 0
	for start := 0; ; start += pageSize {
		batch, err := fetch(ctx, start, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch page at offset %d: %w", start, err)
		}

		pages++
		items = append(items, batch...)

		log.Debug().
			Int("offset", start).
			Int("batch", len(batch)).
			Int("total", len(items)).
			Msg("Fetched page")

		// Short (or empty) page signals end of data.
		if len(batch) < pageSize {
			break
		}
	}

	log.Debug().
		Int("pages", pages).
		Int("items", len(items)).
		Msg("Pagination complete")

	return items, nil
}
