package extract

import (
	"path/filepath"
	"strings"
)

// Kind identifies the container format of a candidate file.
// The set of supported text-bearing containers is closed; anything else
// is KindUnknown and goes straight to raw-byte hashing.
type Kind int

const (
	// KindUnknown is any format without a text extractor
	KindUnknown Kind = iota
	// KindPlainText is a .txt file
	KindPlainText
	// KindPDF is a page-description document; the only kind prone to
	// containing vector graphics instead of prose
	KindPDF
	// KindDocx is a word-processor package (zipped XML)
	KindDocx
)

// KindOf maps a path to its container kind by extension
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return KindPlainText
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDocx
	}
	return KindUnknown
}

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "text"
	case KindPDF:
		return "pdf"
	case KindDocx:
		return "docx"
	}
	return "unknown"
}

// TextBearing reports whether the kind has a text extractor
func (k Kind) TextBearing() bool {
	return k != KindUnknown
}
