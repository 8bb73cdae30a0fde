// Package extract pulls plain text out of supported container formats and
// hosts the heuristic that keeps vector-graphic PDFs away from text matching.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Outcome tags the result of an extraction attempt
type Outcome int

const (
	// Extracted means text was successfully pulled from the container
	Extracted Outcome = iota
	// NotApplicable means the format has no text extractor
	NotApplicable
	// Failed means the container is malformed or unreadable
	// Callers fall back to raw-byte hashing, never abort
	Failed
)

// Result carries the outcome of one extraction attempt
type Result struct {
	Outcome Outcome
	Text    string
	Reason  string
}

// Extractor converts a file into plain text, or signals that it cannot
type Extractor interface {
	Extract(ctx context.Context, path string) Result
}

// FileExtractor extracts text from local files by container kind
type FileExtractor struct{}

// NewFileExtractor creates an extractor for the supported container formats
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Extract attempts text extraction for the given path.
// Unsupported extensions yield NotApplicable; parse errors yield Failed.
func (e *FileExtractor) Extract(ctx context.Context, path string) Result {
	select {
	case <-ctx.Done():
		return Result{Outcome: Failed, Reason: ctx.Err().Error()}
	default:
	}

	switch KindOf(path) {
	case KindPlainText:
		text, err := extractPlainText(path)
		if err != nil {
			return Result{Outcome: Failed, Reason: err.Error()}
		}
		return Result{Outcome: Extracted, Text: text}

	case KindPDF:
		text, err := extractPDF(path)
		if err != nil {
			return Result{Outcome: Failed, Reason: err.Error()}
		}
		return Result{Outcome: Extracted, Text: text}

	case KindDocx:
		text, err := extractDocx(path)
		if err != nil {
			return Result{Outcome: Failed, Reason: err.Error()}
		}
		return Result{Outcome: Extracted, Text: text}
	}

	return Result{Outcome: NotApplicable}
}

// extractPlainText reads a text file, dropping invalid UTF-8 sequences
// instead of failing on them
func extractPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
