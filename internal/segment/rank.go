package segment

import (
	"fmt"
	"slices"
)

// Rank orders components by size, largest first.
//
// Components are inserted one at a time, in input order, into a growing
// sorted sequence: each goes immediately before the first entry whose size
// is not greater than its own, or at the end. With ascending-id input this
// leaves equal-size components in descending id order. Downstream reports
// depend on that order; do not replace this with a stable sort.
func Rank(components []Component) []Component {
	ranked := make([]Component, 0, len(components))
	for _, c := range components {
		pos := len(ranked)
		for i, existing := range ranked {
			if c.Size >= existing.Size {
				pos = i
				break
			}
		}
		ranked = slices.Insert(ranked, pos, c)
	}
	return ranked
}

// TopK returns the first k entries of a ranked list.
func TopK(ranked []Component, k int) ([]Component, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k must be non-negative, got %d", ErrInvalidArgument, k)
	}
	if len(ranked) < k {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientComponents, k, len(ranked))
	}
	return slices.Clone(ranked[:k]), nil
}

// Top2 returns the two highest-ranked components.
func Top2(ranked []Component) (first, second Component, err error) {
	top, err := TopK(ranked, 2)
	if err != nil {
		return Component{}, Component{}, err
	}
	return top[0], top[1], nil
}
