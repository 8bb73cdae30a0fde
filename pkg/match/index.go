package match

import (
	"sort"
	"sync"

	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
)

// Index accumulates fingerprint -> paths across one scan. Writes during
// classification may come from multiple workers; the index is read-only
// once grouping starts.
type Index struct {
	mu    sync.Mutex
	paths map[models.Fingerprint][]string
}

// NewIndex creates an empty fingerprint index
func NewIndex() *Index {
	return &Index{paths: make(map[models.Fingerprint][]string)}
}

// Add records a path under its fingerprint
func (idx *Index) Add(fp models.Fingerprint, path string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.paths[fp] = append(idx.paths[fp], path)
}

// Len returns the number of distinct fingerprints seen
func (idx *Index) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.paths)
}

// Groups returns a DuplicateGroup for every fingerprint with at least two
// members. Members sort lexicographically and groups sort by fingerprint,
// so output is deterministic regardless of insertion order.
func (idx *Index) Groups() []models.DuplicateGroup {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var groups []models.DuplicateGroup
	for fp, members := range idx.paths {
		if len(members) < 2 {
			continue
		}
		sorted := make([]string, len(members))
		copy(sorted, members)
		sort.Strings(sorted)
		groups = append(groups, models.DuplicateGroup{
			Fingerprint: fp,
			Members:     sorted,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Fingerprint < groups[j].Fingerprint
	})

	return groups
}
