// Package comparator composes single-attribute comparisons into one total
// order over records, driven by a precedence list of attribute names.
package comparator

import (
	"github.com/arthur-debert/fieldsort/fieldsort/accessor"
	"github.com/arthur-debert/fieldsort/types"
)

// Comparator orders records of type T by a precedence list
type Comparator[T any] struct {
	acc        accessor.Accessor[T]
	precedence types.Precedence
}

// New validates precedence against acc and returns a comparator. Every bare
// name must resolve on T.
func New[T any](acc accessor.Accessor[T], precedence types.Precedence) (*Comparator[T], error) {
	if err := Validate(acc, precedence); err != nil {
		return nil, err
	}
	return &Comparator[T]{acc: acc, precedence: precedence}, nil
}

// Parse is New for raw tokens such as "-age"
func Parse[T any](acc accessor.Accessor[T], tokens []string) (*Comparator[T], error) {
	precedence, err := types.ParsePrecedence(tokens)
	if err != nil {
		return nil, err
	}
	return New(acc, precedence)
}

// Validate checks that precedence is non-empty and that every column
// resolves on acc
func Validate[T any](acc accessor.Accessor[T], precedence types.Precedence) error {
	if len(precedence) == 0 {
		return &types.PrecedenceError{Index: -1, Err: types.ErrEmptyPrecedence}
	}
	for i, clause := range precedence {
		if !acc.Has(clause.Column) {
			return &types.PrecedenceError{
				Index: i,
				Token: clause.Token(),
				Err: &types.AttributeError{
					Type:      acc.TypeName(),
					Attribute: clause.Column,
					Err:       types.ErrUnknownAttribute,
				},
			}
		}
	}
	return nil
}

// Precedence returns the list the comparator was built from
func (c *Comparator[T]) Precedence() types.Precedence {
	return c.precedence
}

// Compare walks the precedence list and returns the first non-zero
// attribute comparison, negated for descending entries. The last entry's
// result is returned as is, so equal records yield 0.
func (c *Comparator[T]) Compare(a, b T) (int, error) {
	for i, clause := range c.precedence {
		cmp, err := CompareAttribute(c.acc, a, b, clause.Column)
		if err != nil {
			return 0, &types.ComparisonError{Index: i, Token: clause.Token(), Err: err}
		}

		if cmp != 0 || i == len(c.precedence)-1 {
			if clause.Descending {
				return -cmp, nil
			}
			return cmp, nil
		}
		// Equal on this attribute, so the next one decides
	}

	return 0, nil // only reachable with an empty precedence list
}

// Tied reports whether a and b compare equal on every attribute
func (c *Comparator[T]) Tied(a, b T) (bool, error) {
	cmp, err := c.Compare(a, b)
	if err != nil {
		return false, err
	}
	return cmp == 0, nil
}

// CompareAttribute compares a single named attribute of two records in
// ascending order. Dispatch is on the kind of the resolved values.
func CompareAttribute[T any](acc accessor.Accessor[T], a, b T, name string) (int, error) {
	va, err := acc.Get(a, name)
	if err != nil {
		return 0, err
	}
	vb, err := acc.Get(b, name)
	if err != nil {
		return 0, err
	}

	cmp, err := va.Compare(vb)
	if err != nil {
		return 0, &types.AttributeError{Type: acc.TypeName(), Attribute: name, Err: err}
	}
	return cmp, nil
}
