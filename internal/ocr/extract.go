package ocr

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// Warning reports a non-fatal recognition failure for one image. The batch
// keeps going; the caller decides how to surface it.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) String() string {
	return fmt.Sprintf("could not read %s: %v", w.Path, w.Err)
}

// ExtractLines runs the recognizer over every image in the order supplied and
// returns the concatenation of trimmed, non-empty text lines, preserving
// per-image line order. A failure on one image becomes a Warning naming that
// path and the remaining images are still processed; ExtractLines itself
// never fails.
func ExtractLines(ctx context.Context, rec Recognizer, paths []string) ([]string, []Warning) {
	var lines []string
	var warnings []Warning
	for _, path := range paths {
		text, err := rec.Recognize(ctx, path)
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Err: err})
			continue
		}
		scanner := bufio.NewScanner(strings.NewReader(text))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	}
	return lines, warnings
}
