package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
)

// ProgressFormatter renders a progress bar while files are classified and
// hashed, then prints the human-readable summary
type ProgressFormatter struct {
	writer io.Writer
	human  *HumanFormatter
	bar    *pb.ProgressBar
}

// NewProgressFormatter creates a progress-bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{human: NewHumanFormatter()}
}

// Start initializes the progress bar
func (f *ProgressFormatter) Start(writer io.Writer, totalFiles int) error {
	if writer == nil {
		writer = os.Stderr
	}
	f.writer = writer
	f.human.writer = writer

	if totalFiles > 0 {
		f.bar = pb.New(totalFiles)
		f.bar.SetWriter(writer)
		f.bar.Start()
	}

	return nil
}

// Progress advances the bar as files complete
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	if f.bar == nil {
		return nil
	}

	switch update.Type {
	case "file_done", "file_error":
		f.bar.Increment()
	case "matching":
		// The bar covers per-file work; pairwise matching runs after it
		f.bar.Finish()
		f.bar = nil
	}

	return nil
}

// Complete stops the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.ScanReport) error {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	return f.human.Complete(report)
}

// Error reports an error
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
