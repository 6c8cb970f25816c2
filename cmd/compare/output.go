package compare

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/schemadelta/schemadelta/internal/color"
	"github.com/schemadelta/schemadelta/internal/compare"
	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/internal/fingerprint"
	"github.com/schemadelta/schemadelta/schema"
)

// Format selects how compare results are printed
type Format string

const (
	FormatSQL     Format = "sql"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

// ParseFormat accepts sql, json or summary in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSQL, nil
	case FormatSQL, FormatJSON, FormatSummary:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q: want sql, json or summary", s)
	}
}

// report is the JSON output document
type report struct {
	Dialect            dialect.Dialect   `json:"dialect"`
	BaseFingerprint    string            `json:"base_fingerprint"`
	CompareFingerprint string            `json:"compare_fingerprint"`
	Results            []*compare.Result `json:"results"`
}

func renderJSON(d dialect.Dialect, base, target *schema.Schema, results []*compare.Result) (string, error) {
	baseFP, err := fingerprint.Compute(base)
	if err != nil {
		return "", err
	}
	targetFP, err := fingerprint.Compute(target)
	if err != nil {
		return "", err
	}
	if results == nil {
		results = []*compare.Result{}
	}
	data, err := json.MarshalIndent(report{
		Dialect:            d,
		BaseFingerprint:    baseFP.Hash,
		CompareFingerprint: targetFP.Hash,
		Results:            results,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON output: %w", err)
	}
	return string(data) + "\n", nil
}

func renderSummary(results []*compare.Result, c *color.Color) string {
	if len(results) == 0 {
		return "No changes. Schemas are in sync.\n"
	}
	var added, changed, dropped int
	for _, r := range results {
		switch r.ResultType {
		case compare.ResultTypeAdd:
			added++
		case compare.ResultTypeChange:
			changed++
		case compare.ResultTypeDelete:
			dropped++
		}
	}

	var sb strings.Builder
	sb.WriteString(c.FormatHeader(added, changed, dropped))
	sb.WriteString("\n\n")
	for _, r := range results {
		sb.WriteString(c.FormatLine(r.ResultType.String(), r.Label()))
		sb.WriteString("\n")
	}
	return sb.String()
}
