package catalog

import "context"

// fanOut runs the second step of a two-step cross-table lookup. The keys
// collected from the link table are deduplicated first; an empty set
// short-circuits to an empty result without touching the store, since an
// empty IN filter must never reach it.
func fanOut[T any](ctx context.Context, keys []int64, fetch func(context.Context, []int64) ([]T, error)) ([]T, error) {
	keys = UniqueIDs(keys)
	if len(keys) == 0 {
		return []T{}, nil
	}
	return fetch(ctx, keys)
}

// UniqueIDs removes duplicate ids, keeping first-seen order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
