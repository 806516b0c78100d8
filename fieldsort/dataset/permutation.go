package dataset

import (
	"fmt"

	"github.com/google/uuid"
)

// SamePermutation reports an error unless after holds exactly the rows of
// before, each once
func SamePermutation(before, after []*Row) error {
	if len(before) != len(after) {
		return fmt.Errorf("row count changed from %d to %d", len(before), len(after))
	}

	counts := make(map[uuid.UUID]int, len(before))
	for _, row := range before {
		counts[row.ID]++
	}
	for i, row := range after {
		if counts[row.ID] == 0 {
			return fmt.Errorf("row %s at position %d is not in the original set or appears twice", row.ID, i)
		}
		counts[row.ID]--
	}
	return nil
}

// Moved counts the rows whose position differs between before and after
func Moved(before, after []*Row) int {
	moved := 0
	for i, row := range before {
		if i >= len(after) || after[i].ID != row.ID {
			moved++
		}
	}
	return moved
}
