// Package commodity defines the normalized commodity identifier shared by the
// requirement parser and the journal delivery aggregator. Both pipelines must
// agree on this form exactly: progress rows join on string equality, never on
// fuzzy matching.
package commodity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name is a normalized commodity identifier. Two raw strings refer to the
// same commodity iff Normalize maps them to the same Name.
type Name string

// Normalize converts a raw identifier into canonical form: underscores become
// spaces, then every word is title-cased. Journal records carry identifiers
// like "tritium" or "ceramic_composites", while screenshot OCR tends to
// produce upper-case display names; both converge here. Normalize is
// idempotent.
func Normalize(raw string) Name {
	s := strings.ReplaceAll(raw, "_", " ")
	// cases.Caser carries internal state, so build one per call instead of
	// sharing a package-level instance across goroutines.
	return Name(cases.Title(language.English).String(s))
}

func (n Name) String() string { return string(n) }
