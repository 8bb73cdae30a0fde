package extract

import (
	"context"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultVectorOpThreshold is the first-page path-painting instruction count
// above which a PDF is treated as a vector drawing rather than prose
const DefaultVectorOpThreshold = 500

// cadSignatures are producer/creator substrings of known CAD and vector
// authoring tools. A metadata match skips reading the first page entirely.
var cadSignatures = []string{
	"autocad",
	"bentley",
	"microstation",
	"revit",
	"bluebeam",
	"graphisoft",
}

// paintOps are the content-stream operators that terminate and paint a path
// (stroke, fill, combined, and the no-op close used for clipping)
var paintOps = map[string]bool{
	"S": true, "s": true,
	"f": true, "F": true, "f*": true,
	"B": true, "B*": true, "b": true, "b*": true,
	"n": true,
}

// CADDetector decides whether a page-description file is machine-generated
// vector art (architectural drawings, plots) rather than prose. Flagged
// files are excluded from text extraction and binary-hashed instead.
type CADDetector struct {
	vectorOpThreshold int
}

// NewCADDetector creates a detector with the given vector-density threshold
// A threshold < 1 falls back to the default
func NewCADDetector(vectorOpThreshold int) *CADDetector {
	if vectorOpThreshold < 1 {
		vectorOpThreshold = DefaultVectorOpThreshold
	}
	return &CADDetector{vectorOpThreshold: vectorOpThreshold}
}

// Flagged reports whether the file should be excluded from text extraction.
// Either signal alone is sufficient. A document that cannot be opened or
// parsed at all is flagged: corrupted-but-extractable content producing
// false duplicate matches is worse than an occasional skipped prose PDF.
func (d *CADDetector) Flagged(ctx context.Context, path string) bool {
	select {
	case <-ctx.Done():
		return true
	default:
	}

	byMeta, err := d.flaggedByMetadata(path)
	if err != nil {
		return true
	}
	if byMeta {
		return true
	}

	count, err := d.countFirstPagePaintOps(path)
	if err != nil {
		return true
	}
	return count > d.vectorOpThreshold
}

// flaggedByMetadata checks the document Info dictionary for CAD tool names
func (d *CADDetector) flaggedByMetadata(path string) (flagged bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			flagged = true
			err = nil
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return false, nil
	}

	producer := decodeMetaValue(info.Key("Producer"))
	creator := decodeMetaValue(info.Key("Creator"))
	return MatchesCADSignature(producer, creator), nil
}

// MatchesCADSignature checks producer/creator strings against the known
// CAD authoring tool names, case-insensitively
func MatchesCADSignature(producer, creator string) bool {
	producer = strings.ToLower(producer)
	creator = strings.ToLower(creator)
	for _, sig := range cadSignatures {
		if strings.Contains(producer, sig) || strings.Contains(creator, sig) {
			return true
		}
	}
	return false
}

// decodeMetaValue converts a metadata entry to text, tolerating malformed
// encodings rather than failing on them
func decodeMetaValue(v pdf.Value) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()

	switch v.Kind() {
	case pdf.String:
		return strings.ToValidUTF8(v.RawString(), "")
	case pdf.Name:
		return v.Name()
	}
	return ""
}

// countFirstPagePaintOps decodes only the first page's content streams and
// counts path-painting operators. One page is enough to recognize a drawing.
func (d *CADDetector) countFirstPagePaintOps(path string) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			count = 0
			err = io.ErrUnexpectedEOF
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if reader.NumPage() < 1 {
		return 0, nil
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return 0, nil
	}

	content, err := contentStreamBytes(page.V.Key("Contents"))
	if err != nil {
		return 0, err
	}

	return countPaintOps(content), nil
}

// contentStreamBytes concatenates a page's content streams
func contentStreamBytes(contents pdf.Value) ([]byte, error) {
	var data []byte

	appendStream := func(v pdf.Value) error {
		if v.Kind() != pdf.Stream {
			return nil
		}
		r := v.Reader()
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		data = append(data, b...)
		data = append(data, '\n')
		return nil
	}

	switch contents.Kind() {
	case pdf.Stream:
		if err := appendStream(contents); err != nil {
			return nil, err
		}
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			if err := appendStream(contents.Index(i)); err != nil {
				return nil, err
			}
		}
	}

	return data, nil
}

// countPaintOps scans a decoded content stream and counts path-painting
// operator tokens. String literals, hex strings, names, and comments are
// skipped so their contents cannot shadow operators. The scanner keeps no
// state beyond the running count.
func countPaintOps(content []byte) int {
	count := 0
	var tok []byte

	flush := func() {
		if len(tok) > 0 && paintOps[string(tok)] {
			count++
		}
		tok = tok[:0]
	}

	i, n := 0, len(content)
	for i < n {
		c := content[i]
		switch {
		case c == '(':
			// String literal: balanced parens with backslash escapes
			flush()
			depth := 1
			i++
			for i < n && depth > 0 {
				switch content[i] {
				case '\\':
					i++
				case '(':
					depth++
				case ')':
					depth--
				}
				i++
			}

		case c == '<':
			flush()
			if i+1 < n && content[i+1] == '<' {
				i += 2 // dict open
			} else {
				// Hex string
				for i < n && content[i] != '>' {
					i++
				}
				i++
			}

		case c == '>':
			flush()
			i++

		case c == '%':
			// Comment runs to end of line
			flush()
			for i < n && content[i] != '\n' && content[i] != '\r' {
				i++
			}

		case c == '/':
			// Name object
			flush()
			i++
			for i < n && !isPDFDelim(content[i]) && !isPDFSpace(content[i]) {
				i++
			}

		case c == '[' || c == ']' || c == '{' || c == '}':
			flush()
			i++

		case isPDFSpace(c):
			flush()
			i++

		default:
			tok = append(tok, c)
			i++
		}
	}
	flush()

	return count
}

func isPDFSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isPDFDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
