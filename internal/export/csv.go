package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// DefaultFilename returns the timestamped file name used when the caller
// does not pick one, e.g. security_findings_20260821_153000.csv.
func DefaultFilename(now time.Time) string {
	return "security_findings_" + now.UTC().Format("20060102_150405") + ".csv"
}

// WriteCSV writes findings to w: one header row in models.RecordFields
// order, then one row per finding. Rows come out in the order given, so
// callers exporting a report get its severity ordering for free.
func WriteCSV(w io.Writer, findings []models.Finding) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.RecordFields); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, f := range findings {
		record := f.Record()
		row := make([]string, len(models.RecordFields))
		for i, field := range models.RecordFields {
			row[i] = record[field]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", f.ResourceName, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes findings to the file at path, truncating any existing
// file.
func ExportCSV(path string, findings []models.Finding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := WriteCSV(f, findings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
