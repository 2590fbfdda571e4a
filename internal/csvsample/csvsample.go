// Package csvsample reads the header row and the first data row of a CSV
// file. Nothing past the first data row is read.
package csvsample

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// Sample is the header row of a CSV file and the first data row keyed by
// header. Samples holds "" for every header when the file has no data row or
// the row is shorter than the header.
type Sample struct {
	Headers []string
	Samples map[string]string
}

// Value returns the sample for column, or "" when there is none.
func (s Sample) Value(column string) string { return s.Samples[column] }

// ReadFile opens filePath and reads its sample. The file is closed on every
// return path.
func ReadFile(filePath string) (Sample, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Sample{}, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	s, err := Read(file)
	if err != nil {
		return Sample{}, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return s, nil
}

// Read reads the sample from r. An empty input yields a Sample with no
// headers and a nil error; callers decide whether that is fatal.
func Read(r io.Reader) (Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Sample{Samples: map[string]string{}}, nil
	}
	if err != nil {
		return Sample{}, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	samples := make(map[string]string, len(header))
	for _, h := range header {
		samples[h] = ""
	}

	record, err := reader.Read()
	switch {
	case errors.Is(err, io.EOF):
		// header only
	case err != nil:
		return Sample{}, fmt.Errorf("failed to read first data record: %w", err)
	default:
		// With repeated headers the right-most column wins.
		for i, h := range header {
			if i < len(record) {
				samples[h] = record[i]
			}
		}
	}

	return Sample{Headers: header, Samples: samples}, nil
}
