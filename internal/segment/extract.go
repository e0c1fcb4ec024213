package segment

// Extract builds a mask that is true wherever grid carries one of ids.
// Non-positive ids are ignored; background is never selected.
func Extract(grid LabelGrid, ids ...int) Mask {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id > 0 {
			want[id] = true
		}
	}

	mask := NewMask(grid.Width, grid.Height)
	for i, id := range grid.Labels {
		if want[id] {
			mask.Pix[i] = true
		}
	}
	return mask
}

// RankAndExtractTop2 ranks the components of grid and extracts the two
// largest. The ranked list is returned even when there are fewer than two
// components, alongside ErrInsufficientComponents.
func RankAndExtractTop2(grid LabelGrid) (Mask, []Component, error) {
	ranked := Rank(grid.Components())
	first, second, err := Top2(ranked)
	if err != nil {
		return Mask{}, ranked, err
	}
	return Extract(grid, first.ID, second.ID), ranked, nil
}
