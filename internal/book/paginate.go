// Package book holds the two keyed collections of duckbook, the address
// book and the notes book, together with their JSON snapshot codec.
// Collections are single-goroutine values; callers serialize access.
package book

import (
	"fmt"
	"iter"

	"github.com/mesh-intelligence/duckbook/pkg/types"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 5

// paginate yields consecutive batches of at most n items in order. The last
// batch may be short; an empty input yields nothing.
func paginate[T any](items []T, n int) (iter.Seq[[]T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", types.ErrInvalidArgument, n)
	}
	return func(yield func([]T) bool) {
		for start := 0; start < len(items); start += n {
			end := min(start+n, len(items))
			if !yield(items[start:end:end]) {
				return
			}
		}
	}, nil
}
