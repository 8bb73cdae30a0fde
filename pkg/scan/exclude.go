package scan

import (
	"path/filepath"
	"strings"
)

// shouldExclude checks if a relative path matches any exclude pattern
// Patterns support:
//   - Simple glob patterns: *.bak, thumbs.db
//   - Directory patterns: .git/, node_modules/
//   - Path patterns: archive/*, **/drafts/*
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalizedPath := filepath.ToSlash(relativePath)
	baseName := filepath.Base(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		normalizedPattern := filepath.ToSlash(pattern)

		// Directory pattern: excludes everything under the directory
		if strings.HasSuffix(normalizedPattern, "/") {
			dirPattern := strings.TrimSuffix(normalizedPattern, "/")
			if normalizedPath == dirPattern ||
				strings.HasPrefix(normalizedPath, dirPattern+"/") ||
				strings.Contains(normalizedPath, "/"+dirPattern+"/") {
				return true
			}
			continue
		}

		// **/pattern matches at any depth
		if rest, ok := strings.CutPrefix(normalizedPattern, "**/"); ok {
			if matchGlob(baseName, rest) {
				return true
			}
			if normalizedPath == rest || strings.HasSuffix(normalizedPath, "/"+rest) {
				return true
			}
			for _, part := range strings.Split(normalizedPath, "/") {
				if matchGlob(part, rest) {
					return true
				}
			}
			continue
		}

		if strings.Contains(normalizedPattern, "/") {
			// Pattern applies to the full relative path
			if matchGlob(normalizedPath, normalizedPattern) ||
				strings.HasSuffix(normalizedPath, normalizedPattern) {
				return true
			}
		} else {
			// Pattern applies to the basename only
			if matchGlob(baseName, normalizedPattern) {
				return true
			}
		}
	}

	return false
}

// matchGlob performs glob matching, treating malformed patterns as no match
func matchGlob(name, pattern string) bool {
	matched, _ := filepath.Match(pattern, name)
	return matched
}
