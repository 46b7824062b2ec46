package output

import (
	"bytes"
	_ "embed"
	"html/template"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

type htmlRow struct {
	Failed bool
	Cells  []string
}

func (HTMLFormatter) Format(report *Report) ([]byte, error) {
	cols := report.Columns()
	rows := make([]htmlRow, 0, len(report.Rows))
	for _, row := range report.Rows {
		rec := row.Record()
		cells := make([]string, len(cols))
		for i, col := range cols {
			if f, ok := rec.Get(col.Key); ok {
				cells[i] = FormatValue(f)
			}
		}
		rows = append(rows, htmlRow{Failed: row.Error != "", Cells: cells})
	}

	data := struct {
		ID          string
		Columns     []Column
		Rows        []htmlRow
		Total       int
		Failed      int
		Assumptions []string
	}{report.ID, cols, rows, len(report.Rows), report.Failed(), DefaultAssumptions}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
