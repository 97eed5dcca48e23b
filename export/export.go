// Package export serializes finished reports for download: CSV for
// spreadsheets, JSON for re-import and audit.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/mariia-hub/booking-reports/entity"
)

// Format is the custom type to enforce enum-like behavior
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func (f Format) String() string {
	return string(f)
}

// Valid returns true for a supported export format.
func (f Format) Valid() bool {
	return govalidator.IsIn(string(f), string(FormatCSV), string(FormatJSON))
}

// Write serializes the report to w in the requested format.
func Write(w io.Writer, r *entity.Report, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatJSON:
		_, err := WriteJSON(w, r)
		return err
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// Filename builds the download name: <report-name>-<ISO date>.<ext>
// Report names can come from config, so path separators are flattened to
// keep WriteFile inside its output dir.
func Filename(r *entity.Report, f Format) string {
	name := strings.ToLower(strings.TrimSpace(r.Name))
	name = strings.Join(strings.Fields(name), "-")
	name = strings.Map(func(c rune) rune {
		if c == '/' || c == '\\' {
			return '-'
		}
		return c
	}, name)
	return fmt.Sprintf("%s-%s.%s", name, r.GeneratedAt.Format("2006-01-02"), f)
}

// WriteFile writes the export into dir and returns the full path.
func WriteFile(dir string, r *entity.Report, f Format) (string, error) {
	if !f.Valid() {
		return "", fmt.Errorf("unsupported export format %q", f)
	}
	path := filepath.Join(dir, Filename(r, f))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("can't create export file: %w", err)
	}
	defer file.Close()
	if err := Write(file, r, f); err != nil {
		return "", fmt.Errorf("can't write export file: %w", err)
	}
	return path, nil
}

func keyHeader(dim entity.Dimension) string {
	switch dim {
	case entity.ByService:
		return "service_id"
	case entity.ByProvider:
		return "provider_id"
	case entity.ByCurrency:
		return "currency"
	default:
		return "date"
	}
}
