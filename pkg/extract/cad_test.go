package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMatchesCADSignature(t *testing.T) {
	tests := []struct {
		name     string
		producer string
		creator  string
		want     bool
	}{
		{"AutoCADProducer", "AutoCAD 2021 - English", "", true},
		{"CaseInsensitive", "AUTOCAD", "", true},
		{"CreatorField", "", "Bluebeam Revu", true},
		{"Microstation", "Bentley MicroStation v8i", "", true},
		{"Revit", "", "Autodesk Revit 2020", true},
		{"Graphisoft", "Graphisoft ArchiCAD", "", true},
		{"WordProcessor", "Microsoft Word", "Microsoft Word", false},
		{"LatexToolchain", "pdfTeX-1.40", "LaTeX with hyperref", false},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesCADSignature(tt.producer, tt.creator); got != tt.want {
				t.Errorf("MatchesCADSignature(%q, %q) = %v, want %v", tt.producer, tt.creator, got, tt.want)
			}
		})
	}
}

func TestCountPaintOps(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"Empty", "", 0},
		{"SingleStroke", "0 0 m 10 10 l S", 1},
		{"FillAndStroke", "0 0 100 100 re f\n5 5 m 9 9 l S", 2},
		{"EvenOddFill", "0 0 m 1 1 l f*", 1},
		{"CombinedOps", "b B b* B* s n", 6},
		{"TextOnly", "BT /F1 12 Tf (hello) Tj ET", 0},
		// Operators hiding inside string literals must not count
		{"OperatorInString", "(S f B n) Tj", 0},
		{"EscapedParen", `(open \( S still string) Tj S`, 1},
		{"OperatorInHexString", "<53662042> Tj", 0},
		{"OperatorInComment", "% S f B\nS", 1},
		{"OperatorInName", "/S /f gs S", 1},
		{"DictDelims", "<< /Type /Page >> S", 1},
		{"NoSpaceAroundDelims", "[1 2]S(x)f", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countPaintOps([]byte(tt.content)); got != tt.want {
				t.Errorf("countPaintOps(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestCountPaintOpsDrawingDensity(t *testing.T) {
	// Synthetic drawing: 600 small stroked segments, as a plotter would emit
	var b strings.Builder
	for i := 0; i < 600; i++ {
		b.WriteString("0 0 m 5 5 l S\n")
	}

	count := countPaintOps([]byte(b.String()))
	if count != 600 {
		t.Fatalf("countPaintOps = %d, want 600", count)
	}

	d := NewCADDetector(500)
	if count <= d.vectorOpThreshold {
		t.Errorf("density %d should exceed threshold %d", count, d.vectorOpThreshold)
	}
}

func TestNewCADDetectorDefaultThreshold(t *testing.T) {
	d := NewCADDetector(0)
	if d.vectorOpThreshold != DefaultVectorOpThreshold {
		t.Errorf("threshold = %d, want default %d", d.vectorOpThreshold, DefaultVectorOpThreshold)
	}

	d = NewCADDetector(250)
	if d.vectorOpThreshold != 250 {
		t.Errorf("threshold = %d, want 250", d.vectorOpThreshold)
	}
}

func TestFlaggedAssumesUnsafeOnUnparseableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	d := NewCADDetector(DefaultVectorOpThreshold)
	if !d.Flagged(context.Background(), path) {
		t.Error("unparseable document should be flagged (assume unsafe)")
	}
}

func TestFlaggedMissingFile(t *testing.T) {
	d := NewCADDetector(DefaultVectorOpThreshold)
	if !d.Flagged(context.Background(), filepath.Join(t.TempDir(), "gone.pdf")) {
		t.Error("missing document should be flagged (assume unsafe)")
	}
}

func TestFlaggedCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewCADDetector(DefaultVectorOpThreshold)
	if !d.Flagged(ctx, "/irrelevant.pdf") {
		t.Error("cancelled context should flag (no partial inspection)")
	}
}
