package testutil

import (
	"testing"
)

// AssertOrder checks that got holds exactly the elements of base picked in
// the given order, by identity
func AssertOrder[T comparable](t *testing.T, got, base []T, order []int, context ...string) {
	t.Helper()
	ctx := ""
	if len(context) > 0 {
		ctx = " " + context[0]
	}
	if len(got) != len(order) {
		t.Fatalf("expected %d records%s, got %d", len(order), ctx, len(got))
	}
	for i, idx := range order {
		if got[i] != base[idx] {
			t.Errorf("position %d%s: expected record %d (%v), got %v", i, ctx, idx, base[idx], got[i])
		}
	}
}

// AssertPermutation checks that got and want hold the same multiset of elements
func AssertPermutation[T comparable](t *testing.T, got, want []T) {
	t.Helper()
	counts := make(map[T]int, len(want))
	for _, v := range want {
		counts[v]++
	}
	for _, v := range got {
		counts[v]--
	}
	for v, n := range counts {
		if n != 0 {
			t.Errorf("element %v occurs %d more time(s) in input than in output", v, n)
		}
	}
}

// AssertSorted checks that every adjacent pair compares <= 0
func AssertSorted[T any](t *testing.T, records []T, compare func(a, b T) (int, error)) {
	t.Helper()
	for i := 1; i < len(records); i++ {
		c, err := compare(records[i-1], records[i])
		if err != nil {
			t.Fatalf("compare at %d,%d: %v", i-1, i, err)
		}
		if c > 0 {
			t.Errorf("records not in order at positions %d,%d: %v > %v", i-1, i, records[i-1], records[i])
		}
	}
}
