package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/JanKosminski/DuplicateCrawler/pkg/models"
)

// csvHeader is the fixed column order of the report file
var csvHeader = []string{"Similarity Score", "File A", "File B"}

// WriteCSVReport writes the ranked match list to path as UTF-8 CSV.
// Exact-duplicate groups expand to all unordered member pairs at score
// 1.0000; scores print with four decimal places.
func WriteCSVReport(path string, report *models.ScanReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := writeCSV(file, report); err != nil {
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, report *models.ScanReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, pair := range report.RankedPairs() {
		row := []string{
			fmt.Sprintf("%.4f", pair.Score),
			pair.PathA,
			pair.PathB,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}
