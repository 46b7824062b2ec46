package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Origin",
		"Type",
		"Origin Rate",
		"DIFAL",
		"Remote Total",
		"Local Total",
		"Savings vs Local",
		"Diff from Base",
		"Verdict",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		string(result.OriginState),
		rowType,
		result.OriginRate.String(),
		result.DIFAL.StringFixed(2),
		result.RemoteTotal.StringFixed(2),
		result.LocalTotal.StringFixed(2),
		result.SavingsVsLocal.StringFixed(2),
		result.DiffFromBase.StringFixed(2),
		string(result.Verdict),
	}
}
