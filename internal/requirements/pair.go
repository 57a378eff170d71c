package requirements

import (
	"github.com/djglass/ed-colony-construction-tracker/internal/commodity"
)

// PairStrategy couples the independently ordered name and quantity sequences
// into a requirement map. The construction panel lays names and amounts out
// in matching order, so the default strategy is positional; a layout-aware
// strategy using recognizer coordinates could be swapped in without touching
// callers.
type PairStrategy interface {
	Pair(names []string, quantities []int) map[commodity.Name]int
}

// Positional pairs the Nth name with the Nth quantity, in encounter order.
// When the counts differ, pairing stops at the shorter sequence and trailing
// unmatched entries are dropped. A duplicated name keeps the later amount.
type Positional struct{}

func (Positional) Pair(names []string, quantities []int) map[commodity.Name]int {
	n := len(names)
	if len(quantities) < n {
		n = len(quantities)
	}
	m := make(map[commodity.Name]int, n)
	for i := 0; i < n; i++ {
		m[commodity.Normalize(names[i])] = quantities[i]
	}
	return m
}
