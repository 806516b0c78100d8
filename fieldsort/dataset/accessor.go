package dataset

import (
	"fmt"
	"slices"

	"github.com/arthur-debert/fieldsort/types"
)

// Accessor resolves attribute names against the keys of a row set. A name
// no row carries is unknown; a known name missing from one row is invalid
// for that row.
type Accessor struct {
	typeName string
	known    map[string]struct{}
	names    []string
}

// NewAccessor collects the keys of rows, in first-seen order
func NewAccessor(typeName string, rows []*Row) *Accessor {
	a := &Accessor{typeName: typeName, known: make(map[string]struct{})}
	for _, row := range rows {
		if row == nil {
			continue
		}
		for _, f := range row.Fields {
			if _, ok := a.known[f.Key]; !ok {
				a.known[f.Key] = struct{}{}
				a.names = append(a.names, f.Key)
			}
		}
	}
	return a
}

// Get implements accessor.Accessor
func (a *Accessor) Get(row *Row, name string) (types.Value, error) {
	if !a.Has(name) {
		return types.Value{}, &types.AttributeError{Type: a.typeName, Attribute: name, Err: types.ErrUnknownAttribute}
	}
	if row == nil {
		return types.Value{}, &types.AttributeError{
			Type: a.typeName, Attribute: name,
			Err: fmt.Errorf("%w: row is nil", types.ErrInvalidAttribute),
		}
	}

	raw, ok := row.Fields.Get(name)
	if !ok {
		return types.Value{}, &types.AttributeError{
			Type: a.typeName, Attribute: name,
			Err: fmt.Errorf("%w: missing on row %s", types.ErrInvalidAttribute, row.ID),
		}
	}

	v, err := types.ValueOf(raw)
	if err != nil {
		return types.Value{}, &types.AttributeError{Type: a.typeName, Attribute: name, Err: err}
	}
	return v, nil
}

// Has implements accessor.Accessor
func (a *Accessor) Has(name string) bool {
	_, ok := a.known[name]
	return ok
}

// TypeName implements accessor.Accessor
func (a *Accessor) TypeName() string {
	return a.typeName
}

// Names lists the known attribute names in first-seen order
func (a *Accessor) Names() []string {
	return slices.Clone(a.names)
}

// FieldSummary describes how one attribute appears across a row set
type FieldSummary struct {
	Name    string
	Kinds   []types.Kind
	Missing int
	Null    int
}

// Describe summarizes every known attribute over rows
func (a *Accessor) Describe(rows []*Row) []FieldSummary {
	summaries := make([]FieldSummary, len(a.names))
	for i, name := range a.names {
		s := FieldSummary{Name: name}
		for _, row := range rows {
			if row == nil {
				s.Missing++
				continue
			}
			raw, ok := row.Fields.Get(name)
			switch {
			case !ok:
				s.Missing++
			case raw == nil:
				s.Null++
			default:
				v, err := types.ValueOf(raw)
				kind := v.Kind()
				if err != nil {
					kind = types.KindInvalid
				}
				if !slices.Contains(s.Kinds, kind) {
					s.Kinds = append(s.Kinds, kind)
				}
			}
		}
		slices.Sort(s.Kinds)
		summaries[i] = s
	}
	return summaries
}
