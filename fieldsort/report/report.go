// Package report prints a sorted record list showing, for each record, only
// the attribute values needed to tell it apart from its neighbours.
//
// Records are walked pairwise. While comparing a record with its successor
// the successor's values are buffered; they open the successor's line, and
// the successor then prints only what comes after them. A run of records
// tied on a long prefix therefore prints that prefix once per record instead
// of repeating the full precedence list.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/arthur-debert/fieldsort/fieldsort/accessor"
	"github.com/arthur-debert/fieldsort/fieldsort/comparator"
	"github.com/arthur-debert/fieldsort/types"
)

// Separator joins the values on a line
const Separator = ", "

// State is what one record's line hands over to the next one
type State struct {
	// Pending holds the next record's values already fetched, starting at
	// precedence index 0
	Pending []string

	// Resume is the first precedence index the next line still has to print
	Resume int
}

// Reporter renders tie reports for records of type T
type Reporter[T any] struct {
	acc        accessor.Accessor[T]
	precedence types.Precedence
}

// New validates precedence against acc, the same way the comparator does
func New[T any](acc accessor.Accessor[T], precedence types.Precedence) (*Reporter[T], error) {
	if err := comparator.Validate(acc, precedence); err != nil {
		return nil, err
	}
	return &Reporter[T]{acc: acc, precedence: precedence}, nil
}

// Header returns the line introducing the report
func (r *Reporter[T]) Header() string {
	return fmt.Sprintf(
		"Sorted List of %s (only displaying values necessary for comparing input-adjacent Objects per order: %s):",
		r.acc.TypeName(), r.precedence)
}

// Step renders the line for cur given the state left by the previous record.
// next is nil for the last record, which prints all of its remaining values.
// The returned state feeds the call for next.
func (r *Reporter[T]) Step(state State, cur T, next *T) (string, State, error) {
	values := slices.Clone(state.Pending)

	if next == nil {
		for j := state.Resume; j < len(r.precedence); j++ {
			v, err := r.value(cur, j)
			if err != nil {
				return "", State{}, err
			}
			values = append(values, v.String())
		}
		return strings.Join(values, Separator), State{}, nil
	}

	var pending []string
	for j, clause := range r.precedence {
		curValue, err := r.value(cur, j)
		if err != nil {
			return "", State{}, err
		}
		if j >= state.Resume {
			values = append(values, curValue.String())
		}

		nextValue, err := r.value(*next, j)
		if err != nil {
			return "", State{}, err
		}
		pending = append(pending, nextValue.String())

		// Only equality matters here, so the direction flag is ignored
		equal, err := curValue.Equal(nextValue)
		if err != nil {
			return "", State{}, &types.ComparisonError{
				Index: j,
				Token: clause.Token(),
				Err:   &types.AttributeError{Type: r.acc.TypeName(), Attribute: clause.Column, Err: err},
			}
		}
		if !equal {
			break
		}
	}

	return strings.Join(values, Separator), State{Pending: pending, Resume: len(pending)}, nil
}

// Lines renders one line per record, in order
func (r *Reporter[T]) Lines(records []T) ([]string, error) {
	lines := make([]string, 0, len(records))
	state := State{}

	for i := range records {
		var next *T
		if i < len(records)-1 {
			next = &records[i+1]
		}

		line, nextState, err := r.Step(state, records[i], next)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		state = nextState
	}

	return lines, nil
}

// Write renders the header, one line per record and a closing blank line.
// Nothing is written unless every line could be rendered.
func (r *Reporter[T]) Write(w io.Writer, records []T) error {
	lines, err := r.Lines(records)
	if err != nil {
		return err
	}

	var out strings.Builder
	out.WriteString(r.Header())
	out.WriteString("\n")
	for _, line := range lines {
		out.WriteString(line)
		out.WriteString("\n")
	}
	out.WriteString("\n")

	_, err = io.WriteString(w, out.String())
	return err
}

func (r *Reporter[T]) value(record T, j int) (types.Value, error) {
	clause := r.precedence[j]
	v, err := r.acc.Get(record, clause.Column)
	if err != nil {
		return types.Value{}, &types.ComparisonError{Index: j, Token: clause.Token(), Err: err}
	}
	return v, nil
}
