// Package pagination drives offset/limit style endpoints to exhaustion.
//
// The NHL leaders endpoints expose no total-count header; the only
// end-of-data signal is the shape of the batch itself. Collect therefore
// requests pages sequentially with increasing offsets and stops as soon as
// a page comes back empty or shorter than the requested page size.
//
// Example usage:
//
//	players, err := pagination.Collect(ctx, pagination.DefaultPageSize,
//		func(ctx context.Context, start, limit int) ([]Player, error) {
//			return fetchLeadersPage(ctx, start, limit)
//		})
//
// The sequence is lazy, finite and non-restartable: each page is fetched at
// most once and an error aborts the collection.
package pagination
