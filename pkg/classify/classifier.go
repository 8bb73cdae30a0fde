// Package classify routes each discovered file into exactly one matching
// category: semantic-text-eligible or binary-only.
package classify

import (
	"context"
	"unicode/utf8"

	"github.com/JanKosminski/DuplicateCrawler/pkg/extract"
	"github.com/JanKosminski/DuplicateCrawler/pkg/logging"
	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
	"github.com/JanKosminski/DuplicateCrawler/pkg/textnorm"
)

// DefaultMinContentLength is the minimum normalized text length, counted
// in characters, for a file to be treated as text-eligible. Shorter extractions are not a reliable
// similarity signal and would dominate the vocabulary with noise.
const DefaultMinContentLength = 50

// Outcome explains why a file landed in its category
type Outcome string

const (
	// OutcomeText means extraction succeeded and passed the content gate
	OutcomeText Outcome = "text"
	// OutcomeUnknownFormat means the extension has no text extractor
	OutcomeUnknownFormat Outcome = "unknown_format"
	// OutcomeVectorGraphic means the CAD heuristic excluded the file
	OutcomeVectorGraphic Outcome = "vector_graphic"
	// OutcomeExtractionFailed means the container could not be parsed
	OutcomeExtractionFailed Outcome = "extraction_failed"
	// OutcomeShortText means the normalized text fell below the content gate
	OutcomeShortText Outcome = "short_text"
)

// Classification pairs the immutable record with the routing outcome
type Classification struct {
	Record  *models.FileRecord
	Outcome Outcome
}

// VectorDetector decides whether a page-description file is vector art
// rather than prose. Satisfied by extract.CADDetector.
type VectorDetector interface {
	Flagged(ctx context.Context, path string) bool
}

// Classifier classifies files for the matching engines
type Classifier struct {
	extractor        extract.Extractor
	cad              VectorDetector
	minContentLength int
	logger           logging.Logger
}

// New creates a classifier
// A nil logger disables diagnostics
func New(extractor extract.Extractor, cad VectorDetector, minContentLength int, logger logging.Logger) *Classifier {
	if minContentLength < 1 {
		minContentLength = DefaultMinContentLength
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Classifier{
		extractor:        extractor,
		cad:              cad,
		minContentLength: minContentLength,
		logger:           logger,
	}
}

// Classify produces the FileRecord for one path. Classification is
// read-only: the source file is never modified. Every failure degrades to
// BinaryOnly; classification itself never returns an error.
func (c *Classifier) Classify(ctx context.Context, path, relPath string, size int64) Classification {
	binary := func(outcome Outcome) Classification {
		return Classification{
			Record: &models.FileRecord{
				Path:         path,
				RelativePath: relPath,
				Category:     models.BinaryOnly,
				RawSize:      size,
			},
			Outcome: outcome,
		}
	}

	kind := extract.KindOf(path)
	if !kind.TextBearing() {
		return binary(OutcomeUnknownFormat)
	}

	// The CAD heuristic runs before extraction so vector drawings never
	// reach the text pipeline, even when their title blocks carry text
	if kind == extract.KindPDF && c.cad != nil && c.cad.Flagged(ctx, path) {
		c.logger.Info(ctx, "excluded vector-graphic document", logging.Fields{"path": path})
		return binary(OutcomeVectorGraphic)
	}

	res := c.extractor.Extract(ctx, path)
	switch res.Outcome {
	case extract.Extracted:
		// continue below
	case extract.NotApplicable:
		return binary(OutcomeUnknownFormat)
	default:
		c.logger.Warn(ctx, "text extraction failed, falling back to binary hashing",
			logging.Fields{"path": path, "reason": res.Reason})
		return binary(OutcomeExtractionFailed)
	}

	normalized := textnorm.Normalize(res.Text)
	// The gate is measured in characters, so multi-byte text is not
	// over-counted by its UTF-8 encoding
	if utf8.RuneCountInString(normalized) < c.minContentLength {
		// Empty and below-gate extractions both fall back to binary
		// hashing; the file still participates in exact matching
		return binary(OutcomeShortText)
	}

	return Classification{
		Record: &models.FileRecord{
			Path:           path,
			RelativePath:   relPath,
			Category:       models.TextEligible,
			NormalizedText: normalized,
			RawSize:        size,
		},
		Outcome: OutcomeText,
	}
}
