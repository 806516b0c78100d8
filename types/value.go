package types

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"
)

// Kind identifies which member of a Value is populated
type Kind int

const (
	// KindInvalid is the zero Kind; a Value of this kind carries nothing
	KindInvalid Kind = iota
	// KindText covers strings and single characters
	KindText
	// KindBool orders false before true
	KindBool
	// KindInt covers all signed integer widths
	KindInt
	// KindFloat covers float32 and float64
	KindFloat
	// KindOrdered covers any value implementing Orderable. Unsigned integers
	// live here too but still compare against KindInt and KindFloat.
	KindOrdered
)

// String returns the string representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindOrdered:
		return "orderable"
	default:
		return "invalid"
	}
}

// Orderable is implemented by attribute values that are neither text nor
// numbers but still have a natural total order (timestamps, unsigned ints,
// caller-defined types).
type Orderable interface {
	// Compare returns a negative number, zero or a positive number when the
	// receiver sorts before, with or after other. It fails when other is of a
	// type the receiver cannot be ordered against.
	Compare(other Orderable) (int, error)
	String() string
}

// Value is a resolved attribute value
type Value struct {
	kind  Kind
	text  string
	b     bool
	i     int64
	f     float64
	fbits int
	o     Orderable
}

// Text returns a text value
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Char returns a single character as a text value
func Char(r rune) Value { return Value{kind: KindText, text: string(r)} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float value
func Float(f float64) Value { return Value{kind: KindFloat, f: f, fbits: 64} }

// Float32 returns a float value that prints with float32 precision
func Float32(f float32) Value { return Value{kind: KindFloat, f: float64(f), fbits: 32} }

// Ordered wraps an Orderable. A nil Orderable yields an invalid Value.
func Ordered(o Orderable) Value {
	if o == nil {
		return Value{}
	}
	return Value{kind: KindOrdered, o: o}
}

// Time returns a timestamp value
func Time(t time.Time) Value { return Ordered(timeValue{t}) }

// Uint returns an unsigned integer value
func Uint(u uint64) Value { return Ordered(uintValue(u)) }

// Kind reports which member of the value is set
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether the value carries anything
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// String renders the value the way it is shown in tie reports
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, v.fbits)
	case KindOrdered:
		return v.o.String()
	default:
		return "<invalid>"
	}
}

// Interface returns the underlying Go value
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindOrdered:
		if t, ok := v.o.(timeValue); ok {
			return t.t
		}
		if u, ok := v.o.(uintValue); ok {
			return uint64(u)
		}
		return v.o
	default:
		return nil
	}
}

// Compare orders v against other. Text compares case-insensitively, integers
// and floats compare by magnitude (also against each other), booleans put
// false first, orderables defer to their own Compare. Any other pairing of
// kinds fails with ErrMismatchedKinds.
func (v Value) Compare(other Value) (int, error) {
	if !v.IsValid() || !other.IsValid() {
		return 0, fmt.Errorf("%w: cannot compare an absent value", ErrInvalidAttribute)
	}

	if u, ok := v.unsigned(); ok {
		if c, ok := compareUnsigned(u, other); ok {
			return c, nil
		}
	}
	if u, ok := other.unsigned(); ok {
		if c, ok := compareUnsigned(u, v); ok {
			return -c, nil
		}
	}

	switch {
	case v.kind == KindInt && other.kind == KindFloat:
		return cmp.Compare(float64(v.i), other.f), nil
	case v.kind == KindFloat && other.kind == KindInt:
		return cmp.Compare(v.f, float64(other.i)), nil
	case v.kind != other.kind:
		return 0, fmt.Errorf("%w: cannot compare %s value %q with %s value %q",
			ErrMismatchedKinds, v.kind, v.String(), other.kind, other.String())
	}

	switch v.kind {
	case KindText:
		return CompareFold(v.text, other.text), nil
	case KindBool:
		return compareBool(v.b, other.b), nil
	case KindInt:
		return cmp.Compare(v.i, other.i), nil
	case KindFloat:
		return cmp.Compare(v.f, other.f), nil
	default:
		c, err := v.o.Compare(other.o)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMismatchedKinds, err)
		}
		return c, nil
	}
}

// Equal reports whether v and other compare equal. Direction plays no part.
func (v Value) Equal(other Value) (bool, error) {
	c, err := v.Compare(other)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// CompareFold compares two strings codepoint by codepoint, folding each
// codepoint on its own. Folding never changes a string's length, so "ß" and
// "ss" stay distinct.
func CompareFold(a, b string) int {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		a, b = a[na:], b[nb:]
		if ra == rb {
			continue
		}
		if fa, fb := foldRune(ra), foldRune(rb); fa != fb {
			return cmp.Compare(fa, fb)
		}
	}
	return cmp.Compare(len(a), len(b))
}

func foldRune(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}

func (v Value) unsigned() (uint64, bool) {
	if v.kind != KindOrdered {
		return 0, false
	}
	u, ok := v.o.(uintValue)
	return uint64(u), ok
}

// compareUnsigned orders u against a signed or float value by magnitude
func compareUnsigned(u uint64, other Value) (int, bool) {
	switch other.kind {
	case KindInt:
		if other.i < 0 {
			return 1, true
		}
		return cmp.Compare(u, uint64(other.i)), true
	case KindFloat:
		f := float64(u)
		switch {
		case math.IsNaN(other.f) || other.f < 0:
			return 1, true
		case f != other.f:
			return cmp.Compare(f, other.f), true
		case other.f >= twoTo64:
			return -1, true
		default:
			// f rounded onto an integral float; settle ties exactly
			return cmp.Compare(u, uint64(other.f)), true
		}
	}
	return 0, false
}

const twoTo64 = 1 << 64

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// ValueOf converts a plain Go scalar into a Value. Pointers and interfaces are
// dereferenced; nil is an absent value. Slices, maps, structs other than
// time.Time and other composite kinds are unsupported.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, fmt.Errorf("%w: value is absent", ErrInvalidAttribute)
	case Value:
		if !t.IsValid() {
			return Value{}, fmt.Errorf("%w: value is absent", ErrInvalidAttribute)
		}
		return t, nil
	case string:
		return Text(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case float32:
		return Float32(t), nil
	case time.Time:
		return Time(t), nil
	case Orderable:
		return Ordered(t), nil
	}
	return valueOfReflect(reflect.ValueOf(x))
}

func valueOfReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Value{}, fmt.Errorf("%w: value is absent", ErrInvalidAttribute)
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32:
		return Float32(float32(rv.Float())), nil
	case reflect.Float64:
		return Float(rv.Float()), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported kind %s (%s)", ErrInvalidAttribute, rv.Kind(), rv.Type())
	}
}

type timeValue struct{ t time.Time }

func (v timeValue) Compare(other Orderable) (int, error) {
	o, ok := other.(timeValue)
	if !ok {
		return 0, fmt.Errorf("cannot order a timestamp against %T", other)
	}
	return v.t.Compare(o.t), nil
}

// String uses RFC3339Nano for consistent datetime rendering
func (v timeValue) String() string { return v.t.Format(time.RFC3339Nano) }

type uintValue uint64

func (v uintValue) Compare(other Orderable) (int, error) {
	o, ok := other.(uintValue)
	if !ok {
		return 0, fmt.Errorf("cannot order an unsigned integer against %T", other)
	}
	return cmp.Compare(uint64(v), uint64(o)), nil
}

func (v uintValue) String() string { return strconv.FormatUint(uint64(v), 10) }
