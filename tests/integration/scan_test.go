package integration

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JanKosminski/DuplicateCrawler/pkg/match"
	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
	"github.com/JanKosminski/DuplicateCrawler/pkg/output"
	"github.com/JanKosminski/DuplicateCrawler/pkg/scan"
)

// TestHelper provides utilities for integration tests
type TestHelper struct {
	t       *testing.T
	rootDir string
}

// NewTestHelper creates a scan root populated by the test
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	return &TestHelper{t: t, rootDir: t.TempDir()}
}

// Root returns the scan root directory
func (h *TestHelper) Root() string {
	return h.rootDir
}

// CreateFile creates a file under the scan root
func (h *TestHelper) CreateFile(name string, content []byte) string {
	h.t.Helper()
	path := filepath.Join(h.rootDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		h.t.Fatalf("failed to create file %s: %v", name, err)
	}
	return path
}

// CreateDocx creates a minimal Word document containing the given paragraphs
func (h *TestHelper) CreateDocx(name string, paragraphs ...string) string {
	h.t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>")
		body.WriteString(p)
		body.WriteString("</w:t></w:r></w:p>")
	}
	document := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>%s</w:body></w:document>`, body.String())

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{"word/document.xml", document},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			h.t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(entry.content)); err != nil {
			h.t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		h.t.Fatalf("failed to close zip: %v", err)
	}

	return h.CreateFile(name, buf.Bytes())
}

func runScan(t *testing.T, opts scan.Options) *models.ScanReport {
	t.Helper()
	session := scan.NewSession(opts, nil, nil)
	report, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	return report
}

func TestEndToEndHybridScan(t *testing.T) {
	h := NewTestHelper(t)

	prose := "Meeting minutes for the infrastructure review. Attendees discussed capacity planning, incident response drills and the migration schedule for the storage cluster."

	// The same prose as plain text and as a Word document: the semantic
	// pipeline should pair them despite the different containers
	txtPath := h.CreateFile("minutes.txt", []byte(prose))
	docxPath := h.CreateDocx("minutes.docx", prose)

	// Unrelated document
	h.CreateFile("unrelated.txt", []byte("Gardening notes about tomato varieties, soil preparation, watering schedules and seasonal greenhouse maintenance for the allotment."))

	// Byte-identical binaries
	payload := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 4096)
	binA := h.CreateFile("assets/logo.bin", payload)
	binB := h.CreateFile("backup/logo.bin", payload)

	report := runScan(t, scan.Options{
		OperationID: "integration-hybrid",
		Roots:       []string{h.Root()},
		Mode:        models.ModeHybrid,
		Threshold:   match.DefaultThreshold,
	})

	if report.Status != models.StatusSuccess {
		t.Fatalf("status = %v, errors = %+v", report.Status, report.Errors)
	}
	if report.Stats.FilesScanned != 5 {
		t.Errorf("files scanned = %d, want 5", report.Stats.FilesScanned)
	}
	if report.Stats.TextEligible != 3 {
		t.Errorf("text eligible = %d, want 3", report.Stats.TextEligible)
	}

	if len(report.Groups) != 1 {
		t.Fatalf("expected 1 binary duplicate group, got %+v", report.Groups)
	}
	members := report.Groups[0].Members
	if members[0] != binA && members[1] != binA {
		t.Errorf("group missing %s: %v", binA, members)
	}
	if members[0] != binB && members[1] != binB {
		t.Errorf("group missing %s: %v", binB, members)
	}

	if len(report.Pairs) != 1 {
		t.Fatalf("expected the txt/docx pair, got %+v", report.Pairs)
	}
	pair := report.Pairs[0]
	got := map[string]bool{pair.PathA: true, pair.PathB: true}
	if !got[txtPath] || !got[docxPath] {
		t.Errorf("pair = %+v, want %s and %s", pair, txtPath, docxPath)
	}
	if pair.Score < 0.999 {
		t.Errorf("identical prose score = %v, want ~1.0", pair.Score)
	}
}

func TestEndToEndExactScanCrossFormat(t *testing.T) {
	h := NewTestHelper(t)

	prose := "Quarterly financial summary including revenue breakdown, operating expenses and the projected cash flow for the next two quarters."

	txtPath := h.CreateFile("summary.txt", []byte(prose))
	docxPath := h.CreateDocx("summary.docx", prose)

	report := runScan(t, scan.Options{
		OperationID: "integration-exact",
		Roots:       []string{h.Root()},
		Mode:        models.ModeExact,
	})

	// Same normalized prose collapses to one semantic fingerprint even
	// though the raw bytes differ completely
	if len(report.Groups) != 1 {
		t.Fatalf("expected cross-format group, got %+v", report.Groups)
	}
	members := report.Groups[0].Members
	if len(members) != 2 {
		t.Fatalf("group members = %v", members)
	}
	got := map[string]bool{members[0]: true, members[1]: true}
	if !got[txtPath] || !got[docxPath] {
		t.Errorf("group = %v, want %s and %s", members, txtPath, docxPath)
	}
}

func TestEndToEndCSVReport(t *testing.T) {
	h := NewTestHelper(t)

	prose := "Shared procurement checklist covering supplier onboarding, contract templates and the invoice approval workflow for all departments."
	h.CreateFile("checklist_a.txt", []byte(prose))
	h.CreateFile("checklist_b.txt", []byte(prose+" Revised."))

	report := runScan(t, scan.Options{
		OperationID: "integration-csv",
		Roots:       []string{h.Root()},
		Mode:        models.ModeHybrid,
		Threshold:   0.80,
	})

	reportPath := filepath.Join(t.TempDir(), "report.csv")
	if err := output.WriteCSVReport(reportPath, report); err != nil {
		t.Fatalf("WriteCSVReport() error = %v", err)
	}

	f, err := os.Open(reportPath)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 pair, got %d rows", len(records))
	}
	if records[0][0] != "Similarity Score" {
		t.Errorf("header = %v", records[0])
	}
	row := records[1]
	if !strings.HasSuffix(row[1], "checklist_a.txt") || !strings.HasSuffix(row[2], "checklist_b.txt") {
		t.Errorf("row paths = %v", row)
	}
	if len(row[0]) != 6 || !strings.HasPrefix(row[0], "0.9") {
		t.Errorf("score = %q, want four-decimal value above threshold", row[0])
	}
}

func TestEndToEndCancellationMidScan(t *testing.T) {
	h := NewTestHelper(t)
	for i := 0; i < 20; i++ {
		h.CreateFile(fmt.Sprintf("file%02d.bin", i), bytes.Repeat([]byte{byte(i)}, 8192))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := scan.NewSession(scan.Options{
		OperationID: "integration-cancel",
		Roots:       []string{h.Root()},
		Mode:        models.ModeExact,
	}, nil, nil)

	report, err := session.Run(ctx)
	if err != nil {
		t.Fatalf("cancellation must yield a partial report, got error %v", err)
	}
	if report.Status != models.StatusCancelled {
		t.Errorf("status = %v, want cancelled", report.Status)
	}
}
