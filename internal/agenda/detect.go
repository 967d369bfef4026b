package agenda

// Registry remembers which entity ids have been observed under the
// current filter signature. It is a value: DetectNew returns an updated
// copy and the caller owns the storage cell, so there is no hidden
// shared mutable state to reason about.
type Registry struct {
	signature string
	seeded    bool
	seen      map[int64]struct{}
}

// Signature returns the filter signature the registry was last seeded
// under
func (r Registry) Signature() string {
	return r.signature
}

// Size returns the number of remembered ids
func (r Registry) Size() int {
	return len(r.seen)
}

// DetectNew diffs current against reg and returns the entities whose
// ids have not been seen under signature, plus the updated registry.
//
// The first observation of a signature seeds the registry silently and
// reports nothing, so changing a filter never fires a spurious
// "everything is new" alert. Only deltas on subsequent calls under the
// same signature are reported, and each id at most once.
func DetectNew[T any](current []T, reg Registry, signature string, id func(T) int64) ([]T, Registry) {
	firstRun := !reg.seeded || reg.signature != signature

	next := Registry{
		signature: signature,
		seeded:    true,
		seen:      make(map[int64]struct{}, len(current)+reg.Size()),
	}
	if !firstRun {
		for k := range reg.seen {
			next.seen[k] = struct{}{}
		}
	}

	var newItems []T
	for _, e := range current {
		eid := id(e)
		if _, ok := next.seen[eid]; !ok {
			if !firstRun {
				newItems = append(newItems, e)
			}
			next.seen[eid] = struct{}{}
		}
	}

	return newItems, next
}
