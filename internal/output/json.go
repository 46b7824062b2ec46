package output

import (
	"encoding/json"

	"github.com/rgehrsitz/difal/internal/domain"
)

// JSONFormatter formats reports as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	ID   string          `json:"id"`
	Rows []domain.Record `json:"rows"`
}

func (jf JSONFormatter) Format(report *Report) ([]byte, error) {
	doc := jsonReport{ID: report.ID, Rows: make([]domain.Record, 0, len(report.Rows))}
	for _, row := range report.Rows {
		doc.Rows = append(doc.Rows, row.Record())
	}

	if jf.Pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}
