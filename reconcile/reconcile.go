// Package reconcile merges lists submitted by the admin UI against the
// persisted collection: upsert by id or natural key, last-wins dedupe and
// drag-and-drop reordering.
package reconcile

// DedupeLastWins removes entries sharing a natural key, keeping the last
// positional occurrence. Repeated partial saves can leave an older copy of
// an edited record earlier in the list; the later copy carries the edits.
// Entries with an empty key are kept as-is.
func DedupeLastWins[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		k := key(items[i])
		if k != "" && seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, items[i])
	}
	// restore original relative order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Reorder assigns each entity's order field to its 1-based position in the
// submitted list.
func Reorder[T any](items []T, setOrder func(*T, int)) {
	for i := range items {
		setOrder(&items[i], i+1)
	}
}

// Merge upserts the incoming entities into the existing collection. Each
// incoming entity updates the stored record matched by id when it carries
// one, else by natural key; unmatched entities are appended. Records absent
// from the incoming list are never removed: a partial save must not destroy
// unrelated records, deletion is always an explicit operation.
func Merge[T any](existing, incoming []T, id func(T) string, key func(T) string) []T {
	out := make([]T, len(existing))
	copy(out, existing)

	for _, in := range incoming {
		idx := -1
		if inID := id(in); inID != "" {
			for i, ex := range out {
				if id(ex) == inID {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			if inKey := key(in); inKey != "" {
				for i, ex := range out {
					if key(ex) == inKey {
						idx = i
						break
					}
				}
			}
		}
		if idx >= 0 {
			out[idx] = in
		} else {
			out = append(out, in)
		}
	}
	return out
}

// Remove deletes the entity with the given natural key and reports whether
// anything was removed.
func Remove[T any](items []T, key func(T) string, k string) ([]T, bool) {
	out := make([]T, 0, len(items))
	removed := false
	for _, it := range items {
		if key(it) == k {
			removed = true
			continue
		}
		out = append(out, it)
	}
	return out, removed
}
