package comparator

import (
	"slices"

	"github.com/arthur-debert/fieldsort/fieldsort/accessor"
	"github.com/arthur-debert/fieldsort/types"
)

// Sort parses tokens, validates them against acc and sorts records in place.
// Records tied on every attribute keep their relative input order, though
// callers should not rely on that.
func Sort[T any](records []T, acc accessor.Accessor[T], tokens []string) error {
	c, err := Parse(acc, tokens)
	if err != nil {
		return err
	}
	return c.Sort(records)
}

// SortPrecedence is Sort for an already parsed precedence list
func SortPrecedence[T any](records []T, acc accessor.Accessor[T], precedence types.Precedence) error {
	c, err := New(acc, precedence)
	if err != nil {
		return err
	}
	return c.Sort(records)
}

// Sort orders records in place with the comparator. The first comparison
// failure aborts the sort and is returned; records are then left in an
// unspecified order.
func (c *Comparator[T]) Sort(records []T) error {
	var sortErr error
	slices.SortStableFunc(records, func(a, b T) int {
		if sortErr != nil {
			return 0
		}
		cmp, err := c.Compare(a, b)
		if err != nil {
			sortErr = err
			return 0
		}
		return cmp
	})
	return sortErr
}

// IsSorted reports whether records are already in comparator order. It
// returns the index of the first record that sorts before its predecessor,
// or -1.
func (c *Comparator[T]) IsSorted(records []T) (int, error) {
	for i := 1; i < len(records); i++ {
		cmp, err := c.Compare(records[i-1], records[i])
		if err != nil {
			return i, err
		}
		if cmp > 0 {
			return i, nil
		}
	}
	return -1, nil
}
