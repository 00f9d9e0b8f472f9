package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"aquaeco/internal/models"
)

// timestampLayouts are the accepted timestamp formats, tried in order
var timestampLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
}

// parseCSV parses CSV bytes against a schema. The header must contain the
// schema's time column; value columns must be a subset of the schema's
// expected columns. A missing expected column is allowed here and caught
// at render time; an unknown or duplicated column is a parse failure.
func parseCSV(source string, body []byte, schema models.Schema) (*models.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, parseFailure(source, fmt.Errorf("failed to read header: %w", err))
	}

	timeIdx := -1
	columns := make([]string, 0, len(header)-1)
	columnIdx := make([]int, 0, len(header)-1)
	seen := make(map[string]bool, len(header))

	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if seen[name] {
			return nil, parseFailure(source, fmt.Errorf("duplicate column %q", name))
		}
		seen[name] = true

		if name == schema.TimeColumn {
			timeIdx = i
			continue
		}
		if !schema.HasColumn(name) {
			return nil, parseFailure(source, fmt.Errorf("unexpected column %q for schema %q", name, schema.Name))
		}
		columns = append(columns, name)
		columnIdx = append(columnIdx, i)
	}

	if timeIdx == -1 {
		return nil, parseFailure(source, fmt.Errorf("missing time column %q", schema.TimeColumn))
	}

	ds := models.NewDataset(schema, columns)

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Wrong field count or a truncated body surfaces here
			return nil, parseFailure(source, fmt.Errorf("line %d: %w", line, err))
		}

		ts, err := parseTimestamp(row[timeIdx])
		if err != nil {
			return nil, parseFailure(source, fmt.Errorf("line %d: %w", line, err))
		}

		vals := make([]float64, len(columns))
		for j, idx := range columnIdx {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
			if err != nil {
				return nil, parseFailure(source, fmt.Errorf("line %d: column %q: invalid number %q", line, columns[j], row[idx]))
			}
			vals[j] = v
		}

		if err := ds.Append(ts, vals); err != nil {
			return nil, parseFailure(source, fmt.Errorf("line %d: %w", line, err))
		}
	}

	return ds, nil
}

// parseTimestamp tries the accepted layouts in order
func parseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}
