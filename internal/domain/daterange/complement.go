package daterange

import (
	"slices"
)

// Merge returns the union of ranges as sorted, disjoint ranges. Ranges that
// overlap or touch (one ends the day before the other starts) are coalesced.
func Merge(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}

	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b Range) int {
		return a.Start.Compare(b.Start)
	})

	merged := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !r.Start.After(AddDays(last.End, 1)) {
			if r.End.After(last.End) {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// ComplementWithin returns the maximal sub-ranges of window not covered by
// any occupied range, sorted ascending.
func ComplementWithin(window Range, occupied []Range) []Range {
	free := make([]Range, 0)
	cursor := window.Start

	for _, r := range Merge(occupied) {
		if r.End.Before(cursor) {
			continue
		}
		if r.Start.After(window.End) {
			break
		}
		if r.Start.After(cursor) {
			free = append(free, Range{Start: cursor, End: AddDays(r.Start, -1)})
		}
		cursor = AddDays(r.End, 1)
		if cursor.After(window.End) {
			return free
		}
	}

	if !cursor.After(window.End) {
		free = append(free, Range{Start: cursor, End: window.End})
	}
	return free
}
