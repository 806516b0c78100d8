// Package accessor resolves attributes of arbitrary record types by name.
//
// Each record type gets a Schema: a mapping from attribute name to a typed
// getter, built once at startup either by hand (NewSchema + Field) or from
// the exported fields of a struct (FromStruct). Lookups after that are a map
// access plus the getter call.
package accessor

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/arthur-debert/fieldsort/types"
)

// Accessor resolves named attributes on records of type T
type Accessor[T any] interface {
	// Get returns the current value of the named attribute
	Get(record T, name string) (types.Value, error)

	// Has reports whether name is an addressable attribute of T
	Has(name string) bool

	// TypeName names T in report headers and errors
	TypeName() string
}

// Getter reads one attribute from a record
type Getter[T any] func(record T) (types.Value, error)

// Schema maps the attribute names of T to getters
type Schema[T any] struct {
	typeName string
	getters  map[string]Getter[T]
	names    []string
}

// NewSchema creates an empty schema. An empty typeName defaults to the Go
// name of T.
func NewSchema[T any](typeName string) *Schema[T] {
	if typeName == "" {
		typeName = TypeNameOf[T]()
	}
	return &Schema[T]{
		typeName: typeName,
		getters:  make(map[string]Getter[T]),
	}
}

// Field registers an infallible getter under name. It panics on a blank or
// duplicate name since schemas are built once at startup.
func (s *Schema[T]) Field(name string, get func(T) types.Value) *Schema[T] {
	return s.FieldE(name, func(record T) (types.Value, error) {
		return get(record), nil
	})
}

// FieldE registers a getter that may fail, e.g. for nullable attributes
func (s *Schema[T]) FieldE(name string, get Getter[T]) *Schema[T] {
	if name == "" {
		panic("accessor: blank attribute name")
	}
	if _, exists := s.getters[name]; exists {
		panic(fmt.Sprintf("accessor: attribute %q registered twice on %s", name, s.typeName))
	}
	s.getters[name] = get
	s.names = append(s.names, name)
	return s
}

// Get implements Accessor.Get
func (s *Schema[T]) Get(record T, name string) (types.Value, error) {
	get, ok := s.getters[name]
	if !ok {
		return types.Value{}, &types.AttributeError{Type: s.typeName, Attribute: name, Err: types.ErrUnknownAttribute}
	}

	v, err := get(record)
	if err != nil {
		return types.Value{}, &types.AttributeError{Type: s.typeName, Attribute: name, Err: asInvalid(err)}
	}
	if !v.IsValid() {
		return types.Value{}, &types.AttributeError{
			Type:      s.typeName,
			Attribute: name,
			Err:       fmt.Errorf("%w: value is absent", types.ErrInvalidAttribute),
		}
	}
	return v, nil
}

// Has implements Accessor.Has
func (s *Schema[T]) Has(name string) bool {
	_, ok := s.getters[name]
	return ok
}

// TypeName implements Accessor.TypeName
func (s *Schema[T]) TypeName() string {
	return s.typeName
}

// Names returns the registered attribute names in registration order
func (s *Schema[T]) Names() []string {
	return append([]string(nil), s.names...)
}

// TypeNameOf returns the Go name of T, e.g. "main.Person"
func TypeNameOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// asInvalid makes sure a getter failure matches ErrInvalidAttribute
func asInvalid(err error) error {
	if errors.Is(err, types.ErrInvalidAttribute) {
		return err
	}
	return fmt.Errorf("%w: %v", types.ErrInvalidAttribute, err)
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type float interface {
	~float32 | ~float64
}

// Text adapts a string getter
func Text[T any, S ~string](get func(T) S) func(T) types.Value {
	return func(record T) types.Value { return types.Text(string(get(record))) }
}

// Char adapts a rune getter; characters compare as text
func Char[T any](get func(T) rune) func(T) types.Value {
	return func(record T) types.Value { return types.Char(get(record)) }
}

// Bool adapts a boolean getter
func Bool[T any](get func(T) bool) func(T) types.Value {
	return func(record T) types.Value { return types.Bool(get(record)) }
}

// Int adapts a signed integer getter
func Int[T any, N signed](get func(T) N) func(T) types.Value {
	return func(record T) types.Value { return types.Int(int64(get(record))) }
}

// Uint adapts an unsigned integer getter
func Uint[T any, N unsigned](get func(T) N) func(T) types.Value {
	return func(record T) types.Value { return types.Uint(uint64(get(record))) }
}

// Float adapts a float getter
func Float[T any, F float](get func(T) F) func(T) types.Value {
	return func(record T) types.Value {
		f := get(record)
		if reflect.TypeOf(f).Kind() == reflect.Float32 {
			return types.Float32(float32(f))
		}
		return types.Float(float64(f))
	}
}

// Nullable adapts a pointer getter; a nil pointer is an absent value
func Nullable[T any, V any](get func(T) *V) Getter[T] {
	return func(record T) (types.Value, error) {
		p := get(record)
		if p == nil {
			return types.Value{}, fmt.Errorf("%w: value is absent", types.ErrInvalidAttribute)
		}
		return types.ValueOf(*p)
	}
}
