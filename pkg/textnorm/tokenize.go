package textnorm

import "regexp"

// Tokens are runs of two or more word characters; single-character tokens
// and punctuation carry no similarity signal and would bloat the vocabulary
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_]+`)

// Tokenize splits normalized text into vocabulary terms on word boundaries.
// No stemming is applied. Returns nil for text with no extractable terms
// (e.g. all-symbol content).
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return tokenPattern.FindAllString(text, -1)
}

// TokenizeFiltered tokenizes and optionally drops English stop words.
// Stop-word stripping materially changes similarity scores against a fixed
// threshold, so it is an explicit configuration choice, off by default.
func TokenizeFiltered(text string, stripStopWords bool) []string {
	tokens := Tokenize(text)
	if !stripStopWords || len(tokens) == 0 {
		return tokens
	}

	filtered := tokens[:0]
	for _, tok := range tokens {
		if !englishStopWords[tok] {
			filtered = append(filtered, tok)
		}
	}
	return filtered
}
