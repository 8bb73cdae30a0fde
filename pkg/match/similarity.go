package match

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
)

// DefaultThreshold is the similarity score above which a pair is reported
const DefaultThreshold = 0.90

// Matcher finds near-duplicate document pairs via TF-IDF cosine similarity
type Matcher struct {
	// Threshold is exclusive: only pairs scoring strictly above it are
	// reported
	Threshold float64
	// Workers bounds the parallel similarity rows; <=1 runs serially
	Workers int
	// StripStopWords drops common English words before weighting
	StripStopWords bool
}

// NewMatcher creates a matcher with the given threshold and worker count
func NewMatcher(threshold float64, workers int) *Matcher {
	return &Matcher{Threshold: threshold, Workers: workers}
}

// FindSimilar scores every unordered document pair and returns those above
// the threshold. A corpus with fewer than two documents is a normal empty
// result. The pair list is deterministic regardless of worker count:
// sorted by score descending, then lexicographically by path pair.
func (m *Matcher) FindSimilar(ctx context.Context, corpus *Corpus) ([]models.SimilarityPair, error) {
	n := corpus.Len()
	if n < 2 {
		return nil, nil
	}

	// Vocabulary and IDF weights need the full corpus before any pair
	// can be scored; building vectors first is a hard ordering barrier
	space := buildVectors(corpus.Texts, m.StripStopWords)

	// Each row i scores pairs (i, j>i) independently; per-row slices
	// merge at the end so parallelism never affects the result
	rows := make([][]models.SimilarityPair, n)

	g, gctx := errgroup.WithContext(ctx)
	workers := m.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i := 0; i < n-1; i++ {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			var pairs []models.SimilarityPair
			for j := i + 1; j < n; j++ {
				score := cosine(space.vectors[i], space.vectors[j])
				if score <= m.Threshold {
					continue
				}
				pathA, pathB := corpus.Paths[i], corpus.Paths[j]
				if pathB < pathA {
					pathA, pathB = pathB, pathA
				}
				pairs = append(pairs, models.SimilarityPair{
					PathA: pathA,
					PathB: pathB,
					Score: score,
				})
			}
			rows[i] = pairs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var result []models.SimilarityPair
	for _, row := range rows {
		result = append(result, row...)
	}

	sort.Slice(result, func(a, b int) bool {
		if result[a].Score != result[b].Score {
			return result[a].Score > result[b].Score
		}
		if result[a].PathA != result[b].PathA {
			return result[a].PathA < result[b].PathA
		}
		return result[a].PathB < result[b].PathB
	})

	return result, nil
}
