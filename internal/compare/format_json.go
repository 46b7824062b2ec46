package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/difal/internal/domain"
)

// JSONFormatter formats comparison results as JSON. Rows reuse the
// report record encoding, so amounts are plain numbers.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

type jsonComparison struct {
	Input           domain.PurchaseInput `json:"input"`
	BaseOrigin      domain.StateCode     `json:"base_origin"`
	Cheapest        domain.StateCode     `json:"cheapest"`
	Rows            []domain.Record      `json:"rows"`
	Recommendations []string             `json:"recommendations"`
}

// Format generates JSON output for comparison results, base origin first
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonComparison{
		Input:           compSet.Input,
		BaseOrigin:      compSet.BaseOrigin,
		Rows:            make([]domain.Record, 0, len(compSet.AlternativeResults)+1),
		Recommendations: compSet.Recommendations,
	}
	if best := compSet.Cheapest(); best != nil {
		doc.Cheapest = best.OriginState
	}
	if compSet.BaseResult != nil {
		doc.Rows = append(doc.Rows, compSet.BaseResult.Fields())
	}
	for _, alt := range compSet.AlternativeResults {
		doc.Rows = append(doc.Rows, alt.Fields())
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
