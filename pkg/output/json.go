package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// JSONReportData represents the final report data
type JSONReportData struct {
	OperationID string          `json:"operation_id"`
	Roots       []string        `json:"roots"`
	Mode        string          `json:"mode"`
	Threshold   float64         `json:"threshold"`
	Status      string          `json:"status"`
	Duration    string          `json:"duration"`
	DurationMs  int64           `json:"duration_ms"`
	Stats       JSONStatsData   `json:"stats"`
	Groups      []JSONGroupData `json:"duplicate_groups,omitempty"`
	Pairs       []JSONPairData  `json:"similar_pairs,omitempty"`
	Errors      []JSONErrorData `json:"errors,omitempty"`
}

// JSONStatsData represents scan statistics in JSON format
type JSONStatsData struct {
	FilesScanned  int   `json:"files_scanned"`
	TextEligible  int   `json:"text_documents"`
	BinaryFiles   int   `json:"binary_files"`
	VectorSkipped int   `json:"vector_drawings_excluded"`
	ShortText     int   `json:"short_text_fallbacks"`
	FilesErrored  int   `json:"files_errored"`
	FilesIgnored  int   `json:"files_ignored"`
	BytesHashed   int64 `json:"bytes_hashed"`
	GroupsFound   int   `json:"duplicate_groups"`
	PairsFound    int   `json:"similar_pairs"`
}

// JSONGroupData represents one exact-duplicate group
type JSONGroupData struct {
	Fingerprint string   `json:"fingerprint"`
	Members     []string `json:"members"`
}

// JSONPairData represents one similar document pair
type JSONPairData struct {
	FileA string  `json:"file_a"`
	FileB string  `json:"file_b"`
	Score float64 `json:"score"`
}

// JSONErrorData represents a per-file diagnostic
type JSONErrorData struct {
	Path  string `json:"path"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalFiles int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress is a no-op; the JSON formatter emits a single final document
// so the output stays parseable
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete serializes the full report
func (f *JSONFormatter) Complete(report *models.ScanReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	data := JSONReportData{
		OperationID: report.OperationID,
		Roots:       report.Roots,
		Mode:        string(report.Mode),
		Threshold:   report.Threshold,
		Status:      string(report.Status),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			FilesScanned:  report.Stats.FilesScanned,
			TextEligible:  report.Stats.TextEligible,
			BinaryFiles:   report.Stats.BinaryFiles,
			VectorSkipped: report.Stats.VectorSkipped,
			ShortText:     report.Stats.ShortText,
			FilesErrored:  report.Stats.FilesErrored,
			FilesIgnored:  report.Stats.FilesIgnored,
			BytesHashed:   report.Stats.BytesHashed,
			GroupsFound:   report.Stats.GroupsFound,
			PairsFound:    report.Stats.PairsFound,
		},
	}

	for _, g := range report.Groups {
		data.Groups = append(data.Groups, JSONGroupData{
			Fingerprint: string(g.Fingerprint),
			Members:     g.Members,
		})
	}
	for _, p := range report.Pairs {
		data.Pairs = append(data.Pairs, JSONPairData{
			FileA: p.PathA,
			FileB: p.PathB,
			Score: p.Score,
		})
	}
	for _, e := range report.Errors {
		data.Errors = append(data.Errors, JSONErrorData{
			Path:  e.FilePath,
			Stage: e.Stage,
			Error: e.Error,
		})
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Error reports an error
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		return nil
	}
	return json.NewEncoder(f.writer).Encode(map[string]string{"error": err.Error()})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
