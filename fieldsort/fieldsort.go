// Package fieldsort sorts records by attribute names chosen at runtime and
// prints which neighbouring records tie on those attributes.
//
// Basic usage:
//
//	type Person struct {
//		Name string
//		Age  int
//	}
//
//	people := []Person{{"bob", 30}, {"Alice", 30}, {"carol", 25}}
//	_, err := fieldsort.SortStructs(people, "-Age", "Name")
//
// The precedence list names attributes in comparison order. A leading "-"
// sorts that attribute descending. Text compares case-insensitively.
//
// For record types that are not plain structs, build an accessor.Schema by
// hand and call SortAndReport.
package fieldsort

import (
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/arthur-debert/fieldsort/fieldsort/accessor"
	"github.com/arthur-debert/fieldsort/fieldsort/comparator"
	"github.com/arthur-debert/fieldsort/fieldsort/report"
	"github.com/arthur-debert/fieldsort/types"
)

// SortAndReport sorts records in place by the precedence tokens and writes
// the tie report to standard output. It returns the same slice.
func SortAndReport[T any](records []T, acc accessor.Accessor[T], tokens []string) ([]T, error) {
	return SortAndReportTo(os.Stdout, records, acc, tokens)
}

// SortAndReportTo is SortAndReport writing to w. The precedence list is
// validated before anything is reordered; a comparison failure leaves the
// slice in an unspecified order and writes nothing.
func SortAndReportTo[T any](w io.Writer, records []T, acc accessor.Accessor[T], tokens []string) ([]T, error) {
	precedence, err := types.ParsePrecedence(tokens)
	if err != nil {
		return records, err
	}

	cmp, err := comparator.New(acc, precedence)
	if err != nil {
		return records, err
	}
	rep, err := report.New(acc, precedence)
	if err != nil {
		return records, err
	}

	if err := cmp.Sort(records); err != nil {
		return records, err
	}
	if err := rep.Write(w, records); err != nil {
		return records, err
	}
	return records, nil
}

// SortStructs is SortAndReport for struct records, using a schema derived
// from T's exported fields (see accessor.FromStruct)
func SortStructs[T any](records []T, tokens ...string) ([]T, error) {
	acc, err := SchemaFor[T]()
	if err != nil {
		return records, err
	}
	return SortAndReport(records, acc, tokens)
}

var schemas sync.Map // reflect.Type -> *accessor.Schema[T]

// SchemaFor returns the struct-derived schema for T, building it on first use
func SchemaFor[T any]() (*accessor.Schema[T], error) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := schemas.Load(key); ok {
		return cached.(*accessor.Schema[T]), nil
	}

	s, err := accessor.FromStruct[T]()
	if err != nil {
		return nil, err
	}
	actual, _ := schemas.LoadOrStore(key, s)
	return actual.(*accessor.Schema[T]), nil
}
