package feature

import "fmt"

// Selector picks feature components, one bit per row of the interaction
// matrix and entry of the error vector. The zero Selector selects
// nothing and is rejected everywhere; SelectAll picks every component
// regardless of dimension.
type Selector uint32

// SelectAll selects every component of a feature.
const SelectAll Selector = ^Selector(0)

// Select builds a selector from component indices.
func Select(components ...int) Selector {
	var s Selector
	for _, c := range components {
		s |= 1 << uint(c)
	}
	return s
}

// Has reports whether component i is selected.
func (s Selector) Has(i int) bool {
	return s&(1<<uint(i)) != 0
}

// Validate checks the selector against a feature dimension.
func (s Selector) Validate(dim int) error {
	if s == SelectAll {
		return nil
	}
	if s == 0 {
		return fmt.Errorf("%w: empty selector", ErrBadSelection)
	}
	if s>>uint(dim) != 0 {
		return fmt.Errorf("%w: selector %#x exceeds dimension %d", ErrBadSelection, uint32(s), dim)
	}
	return nil
}

// Rows lists the selected component indices of a feature of the given
// dimension, in ascending order.
func (s Selector) Rows(dim int) []int {
	rows := make([]int, 0, dim)
	for i := 0; i < dim; i++ {
		if s.Has(i) {
			rows = append(rows, i)
		}
	}
	return rows
}

// Count returns the number of selected components of a feature of the
// given dimension.
func (s Selector) Count(dim int) int {
	return len(s.Rows(dim))
}
