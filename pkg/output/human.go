package output

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
)

// topMatchCount is how many ranked matches the summary prints
const topMatchCount = 5

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer     io.Writer
	totalFiles int
	startTime  time.Time
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalFiles int) error {
	f.writer = writer
	f.totalFiles = totalFiles
	f.startTime = time.Now()

	if writer != nil {
		fmt.Fprintf(writer, "Scanning %d files...\n", totalFiles)
	}

	return nil
}

// Progress reports progress during the scan
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil {
		return nil
	}

	if update.Type == "file_error" {
		fmt.Fprintf(f.writer, "[%d/%d] ✗ %s: %v\n",
			update.Current, update.Total, update.FilePath, update.Error)
	}

	return nil
}

// Complete finalizes output and displays summary
func (f *HumanFormatter) Complete(report *models.ScanReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Scan completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "%s\n", bold("Summary:"))
	fmt.Fprintf(f.writer, "  Files scanned:    %d\n", report.Stats.FilesScanned)
	fmt.Fprintf(f.writer, "  Text documents:   %d\n", report.Stats.TextEligible)
	fmt.Fprintf(f.writer, "  Binary files:     %d\n", report.Stats.BinaryFiles)
	if report.Stats.VectorSkipped > 0 {
		fmt.Fprintf(f.writer, "  Vector drawings:  %d (excluded from text matching)\n", report.Stats.VectorSkipped)
	}
	if report.Stats.FilesIgnored > 0 {
		fmt.Fprintf(f.writer, "  Files ignored:    %d\n", report.Stats.FilesIgnored)
	}
	if report.Stats.FilesErrored > 0 {
		fmt.Fprintf(f.writer, "  Files errored:    %s\n", red(fmt.Sprintf("%d", report.Stats.FilesErrored)))
	}
	if report.Stats.BytesHashed > 0 {
		fmt.Fprintf(f.writer, "  Data hashed:      %s\n", formatBytes(report.Stats.BytesHashed))
	}
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "  Duplicate groups: %d\n", report.Stats.GroupsFound)
	fmt.Fprintf(f.writer, "  Similar pairs:    %d\n", report.Stats.PairsFound)

	ranked := report.RankedPairs()
	if len(ranked) > 0 {
		fmt.Fprintf(f.writer, "\n%s\n", bold("Top matches:"))
		limit := topMatchCount
		if len(ranked) < limit {
			limit = len(ranked)
		}
		for _, pair := range ranked[:limit] {
			score := fmt.Sprintf("%6.2f%%", pair.Score*100)
			if pair.Score >= 1.0 {
				score = green(score)
			} else {
				score = yellow(score)
			}
			fmt.Fprintf(f.writer, "  %s  %s  <->  %s\n",
				score, filepath.Base(pair.PathA), filepath.Base(pair.PathB))
		}
		if len(ranked) > limit {
			fmt.Fprintf(f.writer, "  ... and %d more (see report file)\n", len(ranked)-limit)
		}
	} else {
		fmt.Fprintf(f.writer, "\nNo duplicates found.\n")
	}

	fmt.Fprintf(f.writer, "\nStatus: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(f.writer, "\nErrors:\n")
		for _, e := range report.Errors {
			fmt.Fprintf(f.writer, "  %s: %s\n", e.FilePath, e.Error)
		}
	}

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
