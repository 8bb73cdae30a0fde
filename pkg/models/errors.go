package models

import "fmt"

// ValidationError represents a configuration validation failure
// Configuration errors are fatal before any scanning begins
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
