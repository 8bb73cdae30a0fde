package scan

import "testing"

func TestShouldExclude(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{"no patterns", "docs/report.pdf", nil, false},
		{"basename glob match", "docs/backup.bak", []string{"*.bak"}, true},
		{"basename glob no match", "docs/report.pdf", []string{"*.bak"}, false},
		{"exact basename", "thumbs.db", []string{"thumbs.db"}, true},
		{"nested basename", "a/b/thumbs.db", []string{"thumbs.db"}, true},
		{"directory pattern root", ".git/config", []string{".git/"}, true},
		{"directory pattern nested", "src/node_modules/x.js", []string{"node_modules/"}, true},
		{"directory pattern not a dir", "node_modules.txt", []string{"node_modules/"}, false},
		{"path glob", "archive/old.pdf", []string{"archive/*"}, true},
		{"path glob wrong dir", "current/old.pdf", []string{"archive/*"}, false},
		{"double star glob", "a/b/c/draft.tmp", []string{"**/*.tmp"}, true},
		{"double star literal", "a/b/draft.tmp", []string{"**/draft.tmp"}, true},
		{"empty pattern ignored", "file.txt", []string{""}, false},
		{"second pattern matches", "notes.log", []string{"*.bak", "*.log"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldExclude(tt.path, tt.patterns); got != tt.want {
				t.Errorf("shouldExclude(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
			}
		})
	}
}
