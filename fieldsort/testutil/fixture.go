// Package testutil holds the shared record fixtures and assertion helpers
// used across the fieldsort test suites.
package testutil

// Record is a flat value object with one attribute of every supported kind.
// Tags give the attributes the names used in the precedence grids.
type Record struct {
	StringVar       string  `sort:"stringVar"`
	IntVar          int     `sort:"intVar"`
	IntegerBoxedVar *int    `sort:"integerBoxedVar"`
	CharVar         rune    `sort:"charVar,char"`
	FloatVar        float32 `sort:"floatVar"`
	BooleanVar      bool    `sort:"booleanVar"`
}

// AllAttributes lists every Record attribute name
var AllAttributes = []string{"stringVar", "intVar", "integerBoxedVar", "charVar", "floatVar", "booleanVar"}

// NewRecord builds a Record, boxing the integer
func NewRecord(s string, i, boxed int, c rune, f float32, b bool) *Record {
	return &Record{
		StringVar:       s,
		IntVar:          i,
		IntegerBoxedVar: &boxed,
		CharVar:         c,
		FloatVar:        f,
		BooleanVar:      b,
	}
}

// NoTies returns five records that differ on every attribute. Ascending by
// stringVar they are already in order.
func NoTies() []*Record {
	return []*Record{
		NewRecord("aA", 0, 0, 'a', 0.0, false),
		NewRecord("Bb", 1, -1, 'b', 0.1, false),
		NewRecord("cC", 2, -2, 'C', 0.2, true),
		NewRecord("Dd", 3, -3, 'd', 0.3, true),
		NewRecord("eE", 4, -4, 'E', 0.4, true),
	}
}

// WithTies returns seven records with ties on every attribute
func WithTies() []*Record {
	return []*Record{
		NewRecord("aA", 0, 0, 'a', -0.6, false),
		NewRecord("Bb", 1, -1, 'B', -0.5, false),
		NewRecord("bB", 1, -1, 'b', -0.5, true),
		NewRecord("bB", 3, -3, 'D', -0.2, true),
		NewRecord("Bb", 4, -4, 'e', -0.1, true),
		NewRecord("bB", 4, -4, 'E', -0.1, false),
		NewRecord("fF", 6, -6, 'g', 0, true),
	}
}

// Scramble reorders records in place. With seven records the result, by
// position before the call, is {4, 2, 1, 3, 5, 6, 0}.
func Scramble[T any](records []T) {
	move(records, 0, len(records)-1)
	move(records, 3, 0)
	move(records, 2, 1)
}

// move removes the element at from and reinserts it at to
func move[T any](s []T, from, to int) {
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
}

// Pick returns base reordered by the given indexes
func Pick[T any](base []T, order []int) []T {
	out := make([]T, len(order))
	for i, idx := range order {
		out[i] = base[idx]
	}
	return out
}
