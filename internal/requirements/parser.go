package requirements

import (
	"github.com/djglass/ed-colony-construction-tracker/internal/commodity"
)

// Parser turns extracted screenshot lines into a requirement map. The zero
// value pairs positionally.
type Parser struct {
	Strategy PairStrategy
}

// NewParser returns a parser with the positional pairing strategy.
func NewParser() Parser {
	return Parser{Strategy: Positional{}}
}

// Parse classifies every line, collects names and quantities in encounter
// order, and pairs them. The result replaces any previous requirement map
// wholesale; Parse never merges across calls.
func (p Parser) Parse(lines []string) map[commodity.Name]int {
	var names []string
	var quantities []int
	for _, line := range lines {
		switch Classify(line) {
		case KindQuantity:
			n, err := parseQuantity(line)
			if err != nil {
				// Classified quantities always parse; keep the lenient
				// posture of the rest of the pipeline anyway.
				continue
			}
			quantities = append(quantities, n)
		default:
			names = append(names, line)
		}
	}
	strategy := p.Strategy
	if strategy == nil {
		strategy = Positional{}
	}
	return strategy.Pair(names, quantities)
}
