package output

import (
	"bytes"
	"encoding/csv"
)

// CSVFormatter writes one row per simulation under the union of all columns
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	cols := report.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Key
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range report.Rows {
		rec := row.Record()
		line := make([]string, len(cols))
		for i, c := range cols {
			if f, ok := rec.Get(c.Key); ok {
				line[i] = f.String()
			}
		}
		if err := w.Write(line); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
