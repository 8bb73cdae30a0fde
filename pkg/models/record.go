package models

// Category classifies how a file participates in duplicate detection
type Category string

const (
	// TextEligible indicates the file's extracted text is used for semantic
	// hashing and fuzzy matching
	TextEligible Category = "text"
	// BinaryOnly indicates the file is compared by raw bytes only
	BinaryOnly Category = "binary"
)

// FileRecord represents a classified file in one scan
// Records are immutable after classification and never reused across scans
type FileRecord struct {
	// Path is the absolute path of the file
	Path string

	// RelativePath is the path relative to the scan root that produced it
	RelativePath string

	// Category routes the file to the matching engines
	Category Category

	// NormalizedText holds the cleaned extracted text
	// Set only when Category is TextEligible
	NormalizedText string

	// RawSize is the file size in bytes
	RawSize int64
}

// MatchMode selects which matching engines run during a scan
type MatchMode string

const (
	// ModeExact hashes every file: semantic hash for text-eligible files,
	// raw-byte hash for everything else
	ModeExact MatchMode = "exact"
	// ModeHybrid fuzzy-matches text-eligible files and binary-hashes the rest
	ModeHybrid MatchMode = "hybrid"
	// ModeText fuzzy-matches text-eligible files and ignores other formats
	ModeText MatchMode = "text"
)

// Valid reports whether the mode is one of the supported match modes
func (m MatchMode) Valid() bool {
	switch m {
	case ModeExact, ModeHybrid, ModeText:
		return true
	}
	return false
}
