package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBlockEdges(t *testing.T) {
	cases := []struct {
		name  string
		slots []int
		want  []int
	}{
		{"empty", []int{}, []int{}},
		{"nil", nil, []int{}},
		{"singleton", []int{5}, []int{5, 5}},
		{"one block", []int{3, 4, 5}, []int{3, 5}},
		{"two blocks and a singleton", []int{1, 2, 5, 6, 10}, []int{1, 2, 5, 6, 10, 10}},
		{"singleton between blocks", []int{1, 2, 4, 7, 8}, []int{1, 2, 4, 4, 7, 8}},
		{"leading singleton", []int{0, 2, 3}, []int{0, 0, 2, 3}},
		{"all contiguous", []int{10, 11, 12, 13}, []int{10, 13}},
		{"two singletons", []int{3, 9}, []int{3, 3, 9, 9}},
		{"unsorted input", []int{10, 2, 1, 6, 5}, []int{1, 2, 5, 6, 10, 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FindBlockEdges(tc.slots))
		})
	}
}

// Every result has even length, every edge comes from the input, and each
// (start, end) pair bounds a run of consecutive input slots.
func TestFindBlockEdgesShape(t *testing.T) {
	inputs := [][]int{
		{0}, {0, 1}, {0, 2, 4, 6}, {1, 2, 3, 7, 8, 20, 21, 22, 40},
		{47}, {5, 6, 7, 8, 9, 10}, {0, 47},
	}
	for _, slots := range inputs {
		edges := FindBlockEdges(slots)
		require.Zero(t, len(edges)%2, "odd edge count for %v", slots)

		booked := make(map[int]bool, len(slots))
		for _, s := range slots {
			booked[s] = true
		}
		for _, e := range edges {
			assert.True(t, booked[e], "edge %d not in input %v", e, slots)
		}
		for i := 0; i < len(edges); i += 2 {
			start, end := edges[i], edges[i+1]
			require.LessOrEqual(t, start, end)
			for s := start; s <= end; s++ {
				assert.True(t, booked[s], "gap inside run [%d,%d] of %v", start, end, slots)
			}
			// Maximality: the run does not extend past its edges.
			assert.False(t, booked[start-1], "run [%d,%d] of %v not maximal", start, end, slots)
			assert.False(t, booked[end+1], "run [%d,%d] of %v not maximal", start, end, slots)
		}
	}
}
