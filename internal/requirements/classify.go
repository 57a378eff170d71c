// Package requirements builds the commodity requirement map from screenshot
// text lines. Lines are classified into names and quantities, then paired by
// a pluggable strategy.
package requirements

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind is the classification of one screenshot text line. Every non-empty
// line is exactly one of the two kinds.
type LineKind int

const (
	// KindName is a commodity display name.
	KindName LineKind = iota
	// KindQuantity is a required amount, digits optionally grouped with
	// thousands separators and nothing else.
	KindQuantity
)

var quantityPattern = regexp.MustCompile(`^[\d,]+$`)

// Classify assigns a line to its kind. A quantity must contain at least one
// digit; a lone separator artifact like "," stays a name line rather than
// producing a phantom amount.
func Classify(line string) LineKind {
	if quantityPattern.MatchString(line) && strings.ContainsAny(line, "0123456789") {
		return KindQuantity
	}
	return KindName
}

// parseQuantity strips grouping separators and parses the remaining digits.
// Only called on lines classified KindQuantity.
func parseQuantity(line string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(line, ",", ""))
}
