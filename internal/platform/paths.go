// Package platform holds the OS-specific path handling used by the CLI.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}

// ValidatePath checks if a path is syntactically valid for the current
// platform
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if runtime.GOOS == "windows" && !isUNCPath(path) {
		for _, char := range []string{"<", ">", "\"", "|", "?", "*"} {
			if strings.Contains(path, char) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// ResolveRoot validates that path names an existing directory and returns
// its absolute form. Scan roots must exist before any scanning begins.
func ResolveRoot(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &PathError{Path: path, Message: "does not exist or is not accessible"}
	}
	if !info.IsDir() {
		return "", &PathError{Path: path, Message: "is not a directory"}
	}

	return abs, nil
}

// ExpandHome replaces a leading ~ with the current user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// isUNCPath checks if a path is a Windows network share path
func isUNCPath(path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	return strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")
}
