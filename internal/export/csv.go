package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSV writes a header of column keys followed by one line per row.
// Lines are joined with "\n" and there is no trailing newline.
// A dataset without rows renders as empty output.
func CSV(ds Dataset) ([]byte, error) {
	if len(ds.Rows) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(ds.Columns))
	for i, col := range ds.Columns {
		header[i] = col.Key
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = row[i].Raw
			}
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
