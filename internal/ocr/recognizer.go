// Package ocr turns requirement screenshots into text lines. Recognition
// itself is delegated to an external engine behind the Recognizer interface;
// any engine that maps an image file to plain text is interchangeable.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Recognizer is the recognition collaborator boundary: one image file in,
// raw multi-line text out.
type Recognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// Tesseract shells out to the tesseract binary. The binary reads the image
// itself and prints recognized text to stdout.
type Tesseract struct {
	// Binary is the tesseract executable. Empty means "tesseract" on PATH.
	Binary string
	// Args are extra engine flags appended after the input/output arguments,
	// e.g. "--psm 6" for the block layout of the construction panel.
	Args []string
}

func (t Tesseract) Recognize(ctx context.Context, path string) (string, error) {
	bin := t.Binary
	if bin == "" {
		bin = "tesseract"
	}
	args := append([]string{path, "stdout"}, t.Args...)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("tesseract %s: %w: %s", path, err, msg)
		}
		return "", fmt.Errorf("tesseract %s: %w", path, err)
	}
	return stdout.String(), nil
}
