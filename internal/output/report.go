package output

import (
	"github.com/google/uuid"
	"github.com/rgehrsitz/difal/internal/domain"
)

// Row is one simulation in a report: its inputs merged with its result, or
// the error that prevented a result
type Row struct {
	Name      string
	Direction domain.Direction
	Inputs    domain.Record
	Result    domain.Record
	Error     string
}

// Record flattens the row into a single ordered record
func (r Row) Record() domain.Record {
	rec := domain.Record{
		domain.TextField("name", "Simulation", r.Name),
		domain.TextField("direction", "Direction", string(r.Direction)),
	}
	rec = rec.Merge(r.Inputs).Merge(r.Result)
	if r.Error != "" {
		rec = append(rec, domain.TextField("error", "Error", r.Error))
	}
	return rec
}

// Column identifies one report column
type Column struct {
	Key   string
	Label string
	Kind  domain.FieldKind
}

// Report is the export-ready view of a batch of simulation outcomes
type Report struct {
	ID   string
	Rows []Row
}

// NewReport builds a report from outcomes, in order
func NewReport(outcomes []domain.Outcome) *Report {
	report := &Report{
		ID:   uuid.NewString(),
		Rows: make([]Row, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		row := Row{
			Name:      o.Simulation.Name,
			Direction: o.Simulation.Direction,
			Inputs:    o.Simulation.Fields(),
			Result:    o.Fields(),
		}
		if o.Err != nil {
			row.Error = o.Err.Error()
		}
		report.Rows = append(report.Rows, row)
	}
	return report
}

// Columns returns the union of all row keys in first-seen order, so purchase
// and sale rows can share one table
func (r *Report) Columns() []Column {
	var cols []Column
	seen := map[string]bool{}
	for _, row := range r.Rows {
		for _, f := range row.Record() {
			if seen[f.Key] {
				continue
			}
			seen[f.Key] = true
			cols = append(cols, Column{Key: f.Key, Label: f.Label, Kind: f.Kind})
		}
	}
	return cols
}

// Failed counts rows that carry an error
func (r *Report) Failed() int {
	n := 0
	for _, row := range r.Rows {
		if row.Error != "" {
			n++
		}
	}
	return n
}
