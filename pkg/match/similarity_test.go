package match

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestFindSimilarInsufficientCorpus(t *testing.T) {
	m := NewMatcher(DefaultThreshold, 1)
	ctx := context.Background()

	// Empty corpus
	pairs, err := m.FindSimilar(ctx, &Corpus{})
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("empty corpus should return no pairs, got %d", len(pairs))
	}

	// Single document is a normal, reportable empty result
	corpus := &Corpus{}
	corpus.Add("/only.txt", "a single document in the corpus")
	pairs, err = m.FindSimilar(ctx, corpus)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("single-document corpus should return no pairs, got %d", len(pairs))
	}
}

func TestFindSimilarNearDuplicates(t *testing.T) {
	base := "the annual financial report describes quarterly revenue growth operating margin and customer retention across all regional markets"
	edited := base + " appendix"

	corpus := &Corpus{}
	corpus.Add("/docs/report-v1.txt", base)
	corpus.Add("/docs/report-v2.txt", edited)
	corpus.Add("/docs/unrelated.txt", "completely different content about gardening tomatoes soil compost watering schedules and greenhouse ventilation techniques")

	m := NewMatcher(0.90, 2)
	pairs, err := m.FindSimilar(context.Background(), corpus)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}

	if len(pairs) != 1 {
		t.Fatalf("expected exactly the near-duplicate pair, got %d pairs", len(pairs))
	}
	p := pairs[0]
	if p.PathA != "/docs/report-v1.txt" || p.PathB != "/docs/report-v2.txt" {
		t.Errorf("unexpected pair: %+v", p)
	}
	if p.Score <= 0.90 || p.Score > 1.0 {
		t.Errorf("score = %v, want in (0.90, 1.0]", p.Score)
	}
}

func TestFindSimilarThresholdIsExclusive(t *testing.T) {
	// Identical documents score exactly 1.0; with the threshold at 1.0
	// the pair must be excluded ("greater than", not "greater or equal")
	text := "identical content in both documents for boundary testing purposes"
	corpus := &Corpus{}
	corpus.Add("/a.txt", text)
	corpus.Add("/b.txt", text)

	m := NewMatcher(1.0, 1)
	pairs, err := m.FindSimilar(context.Background(), corpus)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("pair scoring exactly the threshold must be excluded, got %d pairs", len(pairs))
	}

	m.Threshold = 0.999
	pairs, err = m.FindSimilar(context.Background(), corpus)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("identical documents should pair above 0.999, got %d pairs", len(pairs))
	}
	if pairs[0].Score > 1.0 || pairs[0].Score < 0.999999 {
		t.Errorf("identical documents score = %v, want 1.0", pairs[0].Score)
	}
}

func TestFindSimilarNoSelfOrReversedPairs(t *testing.T) {
	text := "shared vocabulary between every document in this corpus"
	corpus := &Corpus{}
	corpus.Add("/z.txt", text)
	corpus.Add("/a.txt", text)
	corpus.Add("/m.txt", text)

	m := NewMatcher(0.5, 4)
	pairs, err := m.FindSimilar(context.Background(), corpus)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}

	// 3 documents, all identical: exactly C(3,2) = 3 pairs
	if len(pairs) != 3 {
		t.Fatalf("expected 3 unordered pairs, got %d", len(pairs))
	}

	seen := map[string]bool{}
	for _, p := range pairs {
		if p.PathA == p.PathB {
			t.Errorf("self pair emitted: %+v", p)
		}
		if p.PathA > p.PathB {
			t.Errorf("pair not lexicographically ordered: %+v", p)
		}
		key := p.PathA + "|" + p.PathB
		if seen[key] {
			t.Errorf("pair reported twice: %s", key)
		}
		seen[key] = true
	}
}

func TestFindSimilarDeterministicAcrossWorkerCounts(t *testing.T) {
	corpus := &Corpus{}
	words := []string{"report", "budget", "forecast", "review", "minutes", "proposal"}
	for _, w := range words {
		text := strings.Repeat(w+" shared baseline terms appear in every document ", 3)
		corpus.Add("/docs/"+w+".txt", text)
	}

	var baseline []string
	for _, workers := range []int{1, 2, 8} {
		m := NewMatcher(0.3, workers)
		pairs, err := m.FindSimilar(context.Background(), corpus)
		if err != nil {
			t.Fatalf("FindSimilar(workers=%d) error = %v", workers, err)
		}
		var flat []string
		for _, p := range pairs {
			flat = append(flat, p.PathA+"|"+p.PathB)
		}
		if baseline == nil {
			baseline = flat
			continue
		}
		if !reflect.DeepEqual(flat, baseline) {
			t.Errorf("workers=%d produced different pair order", workers)
		}
	}
}

func TestFindSimilarStopWordOnlyOverlap(t *testing.T) {
	// Documents sharing only common function words must not pair once
	// stop words are stripped
	corpus := &Corpus{}
	corpus.Add("/a.txt", "the report about the harbor was filed with the registry office yesterday")
	corpus.Add("/b.txt", "the recipe for the casserole was shared with the cooking club afterwards")

	m := NewMatcher(0.90, 1)
	m.StripStopWords = true
	pairs, err := m.FindSimilar(context.Background(), corpus)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("stop-word-only overlap should not pair, got %+v", pairs)
	}
}

func TestFindSimilarCancellation(t *testing.T) {
	corpus := &Corpus{}
	corpus.Add("/a.txt", "some document text here")
	corpus.Add("/b.txt", "other document text there")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMatcher(0.90, 2)
	if _, err := m.FindSimilar(ctx, corpus); err == nil {
		t.Error("expected error on cancelled context")
	}
}
