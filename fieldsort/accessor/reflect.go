package accessor

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/arthur-debert/fieldsort/types"
)

// TagName is the struct tag read by FromStruct
const TagName = "sort"

var (
	timeType      = reflect.TypeOf(time.Time{})
	orderableType = reflect.TypeOf((*types.Orderable)(nil)).Elem()
)

// fieldMeta holds parsed metadata for a struct field
type fieldMeta struct {
	name   string
	index  []int
	isChar bool
}

// FromStruct derives a schema from the exported fields of struct type T (or
// pointer to struct). Attributes are named after the Go field unless a
// `sort:"name"` tag says otherwise; `sort:"-"` leaves a field out and the
// `char` option marks a rune field as a character:
//
//	type Person struct {
//		Name    string
//		Initial rune `sort:",char"`
//		Age     *int `sort:"age"`
//	}
//
// Fields of unsupported kinds (slices, maps, nested structs) are still
// registered, so asking for them fails with ErrInvalidAttribute rather than
// ErrUnknownAttribute.
func FromStruct[T any]() (*Schema[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	isPtr := t.Kind() == reflect.Ptr
	if isPtr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct type, got %s", t.Kind())
	}

	metas, err := parseStructTags(t)
	if err != nil {
		return nil, err
	}

	s := NewSchema[T]("")
	for _, meta := range metas {
		s.FieldE(meta.name, structGetter[T](meta, isPtr))
	}
	return s, nil
}

// MustFromStruct is like FromStruct but panics on error
func MustFromStruct[T any]() *Schema[T] {
	s, err := FromStruct[T]()
	if err != nil {
		panic(fmt.Sprintf("accessor: %v", err))
	}
	return s
}

// parseStructTags analyzes a struct type and extracts attribute metadata from tags
func parseStructTags(t reflect.Type) ([]fieldMeta, error) {
	var metas []fieldMeta
	seen := make(map[string]string)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip unexported and embedded fields; attributes are flat
		if !field.IsExported() || field.Anonymous {
			continue
		}

		meta := fieldMeta{
			name:  field.Name,
			index: field.Index,
		}

		if tag, ok := field.Tag.Lookup(TagName); ok {
			if tag == "-" {
				continue
			}
			parts := strings.Split(tag, ",")
			if name := strings.TrimSpace(parts[0]); name != "" {
				meta.name = name
			}
			for _, opt := range parts[1:] {
				switch strings.TrimSpace(opt) {
				case "char":
					meta.isChar = true
				case "":
				default:
					return nil, fmt.Errorf("field %s: unknown %s tag option %q", field.Name, TagName, opt)
				}
			}
		}

		if meta.isChar && baseType(field.Type).Kind() != reflect.Int32 {
			return nil, fmt.Errorf("field %s: char option requires a rune field, got %s", field.Name, field.Type)
		}
		if clause, err := types.ParseOrderClause(meta.name); err != nil || clause.Descending {
			return nil, fmt.Errorf("field %s: invalid attribute name %q", field.Name, meta.name)
		}
		if prev, dup := seen[meta.name]; dup {
			return nil, fmt.Errorf("duplicate attribute name %q on fields %s and %s", meta.name, prev, field.Name)
		}
		seen[meta.name] = field.Name

		metas = append(metas, meta)
	}

	return metas, nil
}

// structGetter builds the getter for one field. The field index and
// conversion are fixed here; only the field read happens per call.
func structGetter[T any](meta fieldMeta, isPtr bool) Getter[T] {
	return func(record T) (types.Value, error) {
		rv := reflect.ValueOf(record)
		if isPtr {
			if rv.IsNil() {
				return types.Value{}, fmt.Errorf("%w: record is nil", types.ErrInvalidAttribute)
			}
			rv = rv.Elem()
		}
		return convert(rv.FieldByIndex(meta.index), meta.isChar)
	}
}

// convert turns a field value into a Value, dereferencing pointers
func convert(rv reflect.Value, isChar bool) (types.Value, error) {
	if rv.Type().Implements(orderableType) && rv.Kind() != reflect.Interface {
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return types.Value{}, fmt.Errorf("%w: value is absent", types.ErrInvalidAttribute)
		}
		return types.Ordered(rv.Interface().(types.Orderable)), nil
	}

	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return types.Value{}, fmt.Errorf("%w: value is absent", types.ErrInvalidAttribute)
		}
		return convert(rv.Elem(), isChar)
	case reflect.Interface:
		if rv.IsNil() {
			return types.Value{}, fmt.Errorf("%w: value is absent", types.ErrInvalidAttribute)
		}
		return types.ValueOf(rv.Elem().Interface())
	case reflect.Int32:
		if isChar {
			return types.Char(rune(rv.Int())), nil
		}
		return types.Int(rv.Int()), nil
	case reflect.Struct:
		if rv.Type() == timeType {
			return types.Time(rv.Interface().(time.Time)), nil
		}
		return types.Value{}, fmt.Errorf("%w: unsupported kind %s (%s)", types.ErrInvalidAttribute, rv.Kind(), rv.Type())
	default:
		return types.ValueOf(rv.Interface())
	}
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
