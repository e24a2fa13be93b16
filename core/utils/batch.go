package utils

import "sort"

// Chunk splits items into contiguous batches of at most size elements,
// preserving the original order. The last batch may be shorter. A size
// below one yields a single batch with everything in it.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		if len(items) == 0 {
			return nil
		}
		return [][]T{items}
	}

	var batches [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}

// MergeIDs returns the sorted union of the two id lists with duplicates
// removed. Sorting keeps sync passes deterministic.
func MergeIDs(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		set[id] = struct{}{}
	}

	merged := make([]string, 0, len(set))
	for id := range set {
		merged = append(merged, id)
	}
	sort.Strings(merged)
	return merged
}
