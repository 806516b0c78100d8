package comparator_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/arthur-debert/fieldsort/fieldsort/accessor"
	"github.com/arthur-debert/fieldsort/fieldsort/comparator"
	"github.com/arthur-debert/fieldsort/fieldsort/testutil"
	"github.com/arthur-debert/fieldsort/types"
)

var (
	noTiesSameOrder      = []int{0, 1, 2, 3, 4}
	noTiesReverseOrder   = []int{4, 3, 2, 1, 0}
	withTiesSameOrder    = []int{0, 1, 2, 3, 4, 5, 6}
	withTiesSortedOrder  = []int{0, 1, 2, 3, 5, 4, 6}
	withTiesReverseOrder = []int{6, 5, 4, 3, 1, 2, 0}
)

var recordSchema = accessor.MustFromStruct[*testutil.Record]()

func TestSortFixtureGrids(t *testing.T) {
	tests := []struct {
		name              string
		precedence        []string
		noTies            []int
		withTies          []int
		withTiesScrambled []int
	}{
		{
			name:       "StringAscending",
			precedence: []string{"stringVar", "intVar", "integerBoxedVar", "charVar", "floatVar", "booleanVar"},
			noTies:     noTiesSameOrder,
			withTies:   withTiesSortedOrder,
		},
		{
			name:       "StringDescending",
			precedence: []string{"-stringVar", "intVar", "integerBoxedVar", "charVar", "floatVar", "booleanVar"},
			noTies:     noTiesReverseOrder,
			withTies:   []int{6, 1, 2, 3, 5, 4, 0},
		},
		{
			name:       "IntAscending",
			precedence: []string{"intVar", "stringVar", "integerBoxedVar", "charVar", "floatVar", "booleanVar"},
			noTies:     noTiesSameOrder,
			withTies:   withTiesSortedOrder,
		},
		{
			name:       "IntDescending",
			precedence: []string{"-intVar", "stringVar", "integerBoxedVar", "charVar", "floatVar", "booleanVar"},
			noTies:     noTiesReverseOrder,
			withTies:   withTiesReverseOrder,
		},
		{
			name:       "BoxedAscending",
			precedence: []string{"integerBoxedVar", "stringVar", "intVar", "charVar", "floatVar", "booleanVar"},
			noTies:     noTiesReverseOrder,
			withTies:   withTiesReverseOrder,
		},
		{
			name:       "BoxedDescending",
			precedence: []string{"-integerBoxedVar", "stringVar", "intVar", "charVar", "floatVar", "booleanVar"},
			noTies:     noTiesSameOrder,
			withTies:   withTiesSortedOrder,
		},
		{
			name:       "CharAscending",
			precedence: []string{"charVar", "integerBoxedVar", "stringVar", "intVar", "floatVar", "booleanVar"},
			noTies:     noTiesSameOrder,
			withTies:   withTiesSortedOrder,
		},
		{
			name:       "CharDescending",
			precedence: []string{"-charVar", "integerBoxedVar", "stringVar", "intVar", "floatVar", "booleanVar"},
			noTies:     noTiesReverseOrder,
			withTies:   withTiesReverseOrder,
		},
		{
			name:       "FloatAscending",
			precedence: []string{"floatVar", "charVar", "integerBoxedVar", "stringVar", "intVar", "booleanVar"},
			noTies:     noTiesSameOrder,
			withTies:   withTiesSortedOrder,
		},
		{
			name:       "FloatDescending",
			precedence: []string{"-floatVar", "charVar", "integerBoxedVar", "stringVar", "intVar", "booleanVar"},
			noTies:     noTiesReverseOrder,
			withTies:   withTiesReverseOrder,
		},
		{
			name:              "OnePrecedenceAscending",
			precedence:        []string{"integerBoxedVar"},
			noTies:            noTiesReverseOrder,
			withTies:          []int{6, 4, 5, 3, 1, 2, 0},
			withTiesScrambled: []int{6, 5, 4, 3, 1, 2, 0},
		},
		{
			name:              "OnePrecedenceDescending",
			precedence:        []string{"-integerBoxedVar"},
			noTies:            noTiesSameOrder,
			withTies:          withTiesSameOrder,
			withTiesScrambled: []int{0, 2, 1, 3, 4, 5, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scrambled := tt.withTiesScrambled
			if scrambled == nil {
				scrambled = tt.withTies
			}

			noTiesBase := testutil.NoTies()
			noTies := slices.Clone(noTiesBase)
			sortAndAssert(t, noTies, noTiesBase, tt.precedence, tt.noTies, "no ties")
			testutil.Scramble(noTies)
			sortAndAssert(t, noTies, noTiesBase, tt.precedence, tt.noTies, "no ties, scrambled")

			withTiesBase := testutil.WithTies()
			withTies := slices.Clone(withTiesBase)
			sortAndAssert(t, withTies, withTiesBase, tt.precedence, tt.withTies, "with ties")
			testutil.Scramble(withTies)
			sortAndAssert(t, withTies, withTiesBase, tt.precedence, scrambled, "with ties, scrambled")
		})
	}
}

func sortAndAssert(t *testing.T, records, base []*testutil.Record, precedence []string, order []int, context string) {
	t.Helper()
	if err := comparator.Sort(records, recordSchema, precedence); err != nil {
		t.Fatalf("Sort(%s) error = %v", context, err)
	}
	testutil.AssertOrder(t, records, base, order, context)
}

type named struct {
	Name string
	N    int
}

var namedSchema = accessor.MustFromStruct[named]()

func TestSortScenarios(t *testing.T) {
	records := func() []named {
		return []named{{"aA", 0}, {"Bb", 1}, {"cC", 2}}
	}

	t.Run("CaseInsensitiveAscending", func(t *testing.T) {
		got := records()
		if err := comparator.Sort(got, namedSchema, []string{"Name"}); err != nil {
			t.Fatalf("Sort() error = %v", err)
		}
		assertNames(t, got, "aA", "Bb", "cC")
	})

	t.Run("CaseInsensitiveDescending", func(t *testing.T) {
		got := records()
		if err := comparator.Sort(got, namedSchema, []string{"-Name"}); err != nil {
			t.Fatalf("Sort() error = %v", err)
		}
		assertNames(t, got, "cC", "Bb", "aA")
	})

	t.Run("SecondaryHonorsOwnDirection", func(t *testing.T) {
		got := []named{{"b", 1}, {"a", 1}, {"B", 2}, {"a", 3}}
		if err := comparator.Sort(got, namedSchema, []string{"Name", "-N"}); err != nil {
			t.Fatalf("Sort() error = %v", err)
		}
		want := []named{{"a", 3}, {"a", 1}, {"B", 2}, {"b", 1}}
		if !slices.Equal(got, want) {
			t.Errorf("Sort() = %v, want %v", got, want)
		}
	})
}

func assertNames(t *testing.T, got []named, want ...string) {
	t.Helper()
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestSortProperties(t *testing.T) {
	precedences := [][]string{
		{"stringVar"},
		{"-booleanVar", "charVar"},
		{"floatVar", "-intVar", "stringVar"},
		testutil.AllAttributes,
	}

	for _, tokens := range precedences {
		c, err := comparator.Parse(recordSchema, tokens)
		if err != nil {
			t.Fatalf("Parse(%v) error = %v", tokens, err)
		}

		t.Run(c.Precedence().String(), func(t *testing.T) {
			input := testutil.WithTies()
			records := slices.Clone(input)
			if err := c.Sort(records); err != nil {
				t.Fatalf("Sort() error = %v", err)
			}

			testutil.AssertPermutation(t, records, input)
			testutil.AssertSorted(t, records, c.Compare)

			if idx, err := c.IsSorted(records); err != nil || idx != -1 {
				t.Errorf("IsSorted() = %d, %v after sorting", idx, err)
			}

			again := slices.Clone(records)
			if err := c.Sort(again); err != nil {
				t.Fatalf("second Sort() error = %v", err)
			}
			for i := range again {
				if cmp, _ := c.Compare(again[i], records[i]); cmp != 0 {
					t.Errorf("re-sorting changed a distinguishable position %d", i)
				}
			}

			reversed, err := comparator.New(recordSchema, c.Precedence().Reversed())
			if err != nil {
				t.Fatalf("New(reversed) error = %v", err)
			}
			for i := range input {
				for j := range input {
					forward, _ := c.Compare(input[i], input[j])
					backward, _ := reversed.Compare(input[i], input[j])
					if sign(forward) != -sign(backward) {
						t.Errorf("records %d,%d: forward %d, reversed %d", i, j, forward, backward)
					}
				}
			}
		})
	}
}

func TestSortGroupsDuplicates(t *testing.T) {
	records := testutil.WithTies()
	c, err := comparator.Parse(recordSchema, []string{"stringVar"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := c.Sort(records); err != nil {
		t.Fatalf("Sort() error = %v", err)
	}

	// "Bb" and "bB" fold to the same text, so positions 1..5 form one run
	for i := 1; i < 5; i++ {
		tied, err := c.Tied(records[i], records[i+1])
		if err != nil {
			t.Fatalf("Tied() error = %v", err)
		}
		if !tied {
			t.Errorf("records at %d and %d should be tied", i, i+1)
		}
	}
	if tied, _ := c.Tied(records[0], records[1]); tied {
		t.Error("aA should not tie with bB")
	}
}

func TestSortErrors(t *testing.T) {
	t.Run("UnknownAttribute", func(t *testing.T) {
		base := testutil.NoTies()
		records := slices.Clone(base)
		err := comparator.Sort(records, recordSchema, []string{"stringVar", "-noSuchVar"})
		if !errors.Is(err, types.ErrUnknownAttribute) {
			t.Fatalf("expected ErrUnknownAttribute, got %v", err)
		}
		if !errors.Is(err, types.ErrInvalidPrecedenceSpec) {
			t.Errorf("expected ErrInvalidPrecedenceSpec, got %v", err)
		}
		var pe *types.PrecedenceError
		if !errors.As(err, &pe) || pe.Index != 1 || pe.Token != "-noSuchVar" {
			t.Errorf("expected PrecedenceError at index 1, got %v", err)
		}
		testutil.AssertOrder(t, records, base, noTiesSameOrder)
	})

	t.Run("CaseMismatchIsUnknown", func(t *testing.T) {
		err := comparator.Sort(testutil.NoTies(), recordSchema, []string{"StringVar"})
		if !errors.Is(err, types.ErrUnknownAttribute) {
			t.Fatalf("expected ErrUnknownAttribute, got %v", err)
		}
	})

	t.Run("EmptyPrecedence", func(t *testing.T) {
		err := comparator.Sort(testutil.NoTies(), recordSchema, nil)
		if !errors.Is(err, types.ErrInvalidPrecedenceSpec) {
			t.Fatalf("expected ErrInvalidPrecedenceSpec, got %v", err)
		}
		if err := comparator.SortPrecedence(testutil.NoTies(), recordSchema, types.Precedence{}); !errors.Is(err, types.ErrEmptyPrecedence) {
			t.Errorf("expected ErrEmptyPrecedence, got %v", err)
		}
	})

	t.Run("MalformedToken", func(t *testing.T) {
		err := comparator.Sort(testutil.NoTies(), recordSchema, []string{"intVar", "--stringVar"})
		var pe *types.PrecedenceError
		if !errors.As(err, &pe) || pe.Index != 1 {
			t.Fatalf("expected PrecedenceError at index 1, got %v", err)
		}
	})

	t.Run("AbsentValueMidSort", func(t *testing.T) {
		records := testutil.WithTies()
		records[3].IntegerBoxedVar = nil
		err := comparator.Sort(records, recordSchema, []string{"booleanVar", "integerBoxedVar"})
		if !errors.Is(err, types.ErrComparisonFailed) {
			t.Fatalf("expected ErrComparisonFailed, got %v", err)
		}
		if !errors.Is(err, types.ErrInvalidAttribute) {
			t.Errorf("expected wrapped ErrInvalidAttribute, got %v", err)
		}
		var ce *types.ComparisonError
		if !errors.As(err, &ce) || ce.Index != 1 {
			t.Errorf("expected ComparisonError at index 1, got %v", err)
		}
	})

	t.Run("MixedKinds", func(t *testing.T) {
		type cell struct{ V any }
		s := accessor.MustFromStruct[cell]()
		records := []cell{{"x"}, {1}, {true}}
		err := comparator.Sort(records, s, []string{"V"})
		if !errors.Is(err, types.ErrComparisonFailed) || !errors.Is(err, types.ErrInvalidAttribute) {
			t.Fatalf("expected comparison failure on mixed kinds, got %v", err)
		}
	})
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
