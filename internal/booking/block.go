// Package booking implements the slot booking and cancellation rules: how
// far ahead a slot may be reserved, how large a contiguous block one user
// may hold, how much empty time must separate two blocks, and which slots
// of a block may be cancelled. Persistence is abstracted behind SlotStore
// so the rules can be exercised against an in-memory store in tests.
package booking

import "sort"

// FindBlockEdges reduces a user's booked slot indices for one day and room
// to the boundaries of each maximal contiguous run. The result alternates
// (start, end) pairs in ascending order and always has even length: a run
// of a single slot emits its index twice, so [5] -> [5,5] and
// [1,2,5,6,10] -> [1,2,5,6,10,10]. An empty input produces an empty result.
//
// The input does not need to be sorted; a copy is sorted internally so the
// outcome is independent of input order. The result is purely advisory,
// callers decide what to do with the edges.
func FindBlockEdges(slots []int) []int {
	sorted := append([]int(nil), slots...)
	sort.Ints(sorted)

	edges := make([]int, 0, len(sorted)*2)
	open := false

	for _, s := range sorted {
		if len(edges) == 0 || s != edges[len(edges)-1]+1 {
			// Non-contiguous: the previous run, if still open, was a
			// singleton and gets its start duplicated as its end.
			if open {
				edges = append(edges, edges[len(edges)-1])
			}
			edges = append(edges, s)
			open = true
		} else if open {
			// Second slot of the current run closes it.
			open = false
			edges = append(edges, s)
		} else {
			// Run already closed; slide its end forward.
			edges[len(edges)-1] = s
		}
	}

	// A run of length 1 at the very end of the input never saw a
	// non-contiguous successor, so its duplicate is still missing.
	if len(edges)%2 != 0 {
		edges = append(edges, edges[len(edges)-1])
	}
	return edges
}
