package output

import (
	"io"

	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
)

// ProgressUpdate represents a progress notification during a scan
type ProgressUpdate struct {
	Type     string // "classify_start", "file_done", "file_error", "matching"
	FilePath string
	Current  int
	Total    int
	Error    error
}

// Formatter defines the interface for scan output formatting
// Implementations include human-readable, progress-bar and JSON formatters
type Formatter interface {
	// Start initializes the formatter for a new scan
	Start(writer io.Writer, totalFiles int) error

	// Progress reports progress during the scan
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays the summary
	Complete(report *models.ScanReport) error

	// Error reports a fatal error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
