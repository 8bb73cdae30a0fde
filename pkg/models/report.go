package models

import (
	"sort"
	"time"
)

// Fingerprint is a hex-encoded SHA-256 digest identifying exact content
// equality. Two files with equal fingerprints are exact duplicates.
type Fingerprint string

// DuplicateGroup represents two or more files sharing one fingerprint
type DuplicateGroup struct {
	Fingerprint Fingerprint
	// Members are the paths sharing the fingerprint, in lexicographic order
	Members []string
}

// SimilarityPair represents two documents whose cosine similarity exceeds
// the configured threshold. PathA sorts before PathB so each unordered pair
// is reported exactly once.
type SimilarityPair struct {
	PathA string
	PathB string
	// Score is the similarity in [0,1]; exact matches carry 1.0
	Score float64
}

// ScanStatus represents the overall result of a scan
type ScanStatus string

const (
	// StatusSuccess indicates the scan completed without per-file errors
	StatusSuccess ScanStatus = "success"
	// StatusPartial indicates some files were skipped due to errors
	StatusPartial ScanStatus = "partial"
	// StatusFailed indicates the scan failed
	StatusFailed ScanStatus = "failed"
	// StatusCancelled indicates the scan was cancelled
	StatusCancelled ScanStatus = "cancelled"
)

// ExitCode returns the appropriate process exit code for the scan status
func (s ScanStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}

// ScanError represents a per-file diagnostic recorded during a scan
type ScanError struct {
	FilePath  string
	Stage     string // "walk", "classify", "fingerprint"
	Error     string
	Timestamp time.Time
}

// Statistics holds scan metrics
type Statistics struct {
	FilesScanned int
	TextEligible int
	BinaryFiles  int
	// VectorSkipped counts page-description files excluded by the CAD heuristic
	VectorSkipped int
	// ShortText counts extractions below the minimum-content gate
	ShortText    int
	FilesErrored int
	FilesIgnored int // non-text files ignored in text-only mode

	BytesHashed int64

	GroupsFound int
	PairsFound  int
}

// ScanReport represents the results of one scan invocation
type ScanReport struct {
	// Operation details
	OperationID string
	Roots       []string
	Mode        MatchMode
	Threshold   float64

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Groups holds exact-duplicate groups from the exact-match engine
	Groups []DuplicateGroup

	// Pairs holds near-duplicate pairs from the fuzzy-match engine
	Pairs []SimilarityPair

	// Errors holds per-file diagnostics
	Errors []ScanError

	// Overall status
	Status ScanStatus
}

// RankedPairs merges exact groups and fuzzy pairs into a single ranked list.
// Groups expand to all unordered member pairs at score 1.0. The result is
// deduplicated and sorted by score descending, then by path pair, so output
// is stable across runs regardless of worker count.
func (r *ScanReport) RankedPairs() []SimilarityPair {
	seen := make(map[[2]string]bool)
	var pairs []SimilarityPair

	add := func(a, b string, score float64) {
		if b < a {
			a, b = b, a
		}
		key := [2]string{a, b}
		if seen[key] {
			return
		}
		seen[key] = true
		pairs = append(pairs, SimilarityPair{PathA: a, PathB: b, Score: score})
	}

	for _, g := range r.Groups {
		for i := 0; i < len(g.Members); i++ {
			for j := i + 1; j < len(g.Members); j++ {
				add(g.Members[i], g.Members[j], 1.0)
			}
		}
	}
	for _, p := range r.Pairs {
		add(p.PathA, p.PathB, p.Score)
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		if pairs[i].PathA != pairs[j].PathA {
			return pairs[i].PathA < pairs[j].PathA
		}
		return pairs[i].PathB < pairs[j].PathB
	})

	return pairs
}
