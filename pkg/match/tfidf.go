package match

import (
	"math"
	"sort"

	"github.com/JanKosminski/DuplicateCrawler/pkg/textnorm"
)

// Corpus is the ordered sequence of (path, normalized text) pairs for all
// text-eligible files in one scan. Owned by the fuzzy-match engine for the
// duration of one similarity computation.
type Corpus struct {
	Paths []string
	Texts []string
}

// Add appends one document to the corpus
func (c *Corpus) Add(path, normalizedText string) {
	c.Paths = append(c.Paths, path)
	c.Texts = append(c.Texts, normalizedText)
}

// Len returns the number of documents
func (c *Corpus) Len() int {
	return len(c.Paths)
}

// docVector is a sparse TF-IDF document vector: vocabulary ids ascending,
// weights L2-normalized. Contiguous storage keeps the pairwise similarity
// pass cache-friendly.
type docVector struct {
	terms   []int32
	weights []float64
}

// vectorSpace holds one vector per corpus document over a shared vocabulary
type vectorSpace struct {
	vectors []docVector
	// vocabSize is the number of distinct terms across the corpus
	vocabSize int
}

// buildVectors tokenizes every document, builds the global vocabulary, and
// produces TF-IDF weighted vectors. IDF uses smoothed weighting,
// ln((1+n)/(1+df)) + 1, so terms present in every document still carry a
// small weight and no term divides by zero.
// The whole corpus must be tokenized before any weight is computed; IDF
// depends on document frequencies across all documents.
func buildVectors(texts []string, stripStopWords bool) vectorSpace {
	vocab := make(map[string]int32)
	var docFreq []int

	// Pass 1: vocabulary and per-document term counts
	docCounts := make([]map[int32]int, len(texts))
	for i, text := range texts {
		counts := make(map[int32]int)
		for _, tok := range textnorm.TokenizeFiltered(text, stripStopWords) {
			id, ok := vocab[tok]
			if !ok {
				id = int32(len(vocab))
				vocab[tok] = id
				docFreq = append(docFreq, 0)
			}
			counts[id]++
		}
		for id := range counts {
			docFreq[id]++
		}
		docCounts[i] = counts
	}

	n := len(texts)
	idf := make([]float64, len(docFreq))
	for id, df := range docFreq {
		idf[id] = math.Log(float64(1+n)/float64(1+df)) + 1
	}

	// Pass 2: weighted, normalized vectors
	vectors := make([]docVector, len(texts))
	for i, counts := range docCounts {
		terms := make([]int32, 0, len(counts))
		for id := range counts {
			terms = append(terms, id)
		}
		sort.Slice(terms, func(a, b int) bool { return terms[a] < terms[b] })

		weights := make([]float64, len(terms))
		var sumSquares float64
		for j, id := range terms {
			w := float64(counts[id]) * idf[id]
			weights[j] = w
			sumSquares += w * w
		}
		if sumSquares > 0 {
			norm := math.Sqrt(sumSquares)
			for j := range weights {
				weights[j] /= norm
			}
		}

		vectors[i] = docVector{terms: terms, weights: weights}
	}

	return vectorSpace{vectors: vectors, vocabSize: len(vocab)}
}

// cosine computes the cosine similarity of two vectors by merge join over
// their sorted term ids. Vectors are already L2-normalized, so the dot
// product is the cosine. A zero vector (document with no extractable
// terms) yields 0.0 by definition, not an error.
func cosine(a, b docVector) float64 {
	if len(a.terms) == 0 || len(b.terms) == 0 {
		return 0.0
	}

	var dot float64
	i, j := 0, 0
	for i < len(a.terms) && j < len(b.terms) {
		switch {
		case a.terms[i] == b.terms[j]:
			dot += a.weights[i] * b.weights[j]
			i++
			j++
		case a.terms[i] < b.terms[j]:
			i++
		default:
			j++
		}
	}

	// Clamp rounding drift so identical documents score exactly 1.0
	if dot > 1.0 {
		dot = 1.0
	}
	return dot
}
