package goalgebra

// cursor walks a sorted slice in one direction. Merges over literals and
// expressions read both operands through a pair of cursors.
type cursor[T any] struct {
	items []T
	i     int
	step  int
}

func forward[T any](items []T) *cursor[T] {
	return &cursor[T]{items: items, step: 1}
}

func backward[T any](items []T) *cursor[T] {
	return &cursor[T]{items: items, i: len(items) - 1, step: -1}
}

// next returns the current item and advances; ok is false once the slice
// is exhausted.
func (c *cursor[T]) next() (item T, ok bool) {
	if c.i < 0 || c.i >= len(c.items) {
		return item, false
	}
	item = c.items[c.i]
	c.i += c.step
	return item, true
}

// mergeOrder compares two cursor heads for a forward merge. An exhausted
// side sorts after everything so the other side drains first.
func mergeOrder(lok, rok bool, compare func() int) int {
	switch {
	case !lok && !rok:
		return 0
	case !lok:
		return 1
	case !rok:
		return -1
	}
	return compare()
}
