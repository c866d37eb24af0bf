package speciescleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisReportRender(t *testing.T) {
	report := &AnalysisReport{
		Total:               4,
		Empty:               1,
		Placeholder:         1,
		WithSuffix:          1,
		Clean:               1,
		PlaceholderExamples: []string{"Onthophagus sp."},
		SuffixExamples:      []string{"Onthophagus incensusASolis02 → binomial='Onthophagus incensus' + suffix='ASolis02'"},
	}
	out := report.Render()
	assert.Contains(t, out, "SPECIES NAME ANALYSIS")
	assert.Contains(t, out, "Total species values: 4")
	assert.Contains(t, out, "Empty: 1 (25.0%)")
	assert.Contains(t, out, "~ Onthophagus sp.")
	// Empty example sections are omitted entirely.
	assert.NotContains(t, out, "Examples of trinomials")
}

func TestAnalysisReportRenderEmpty(t *testing.T) {
	out := (&AnalysisReport{}).Render()
	assert.Contains(t, out, "Total species values: 0")
	assert.Contains(t, out, "(0.0%)")
}

func TestCleanStatsRender(t *testing.T) {
	stats := &CleanStats{
		Modified:       2,
		Suffixes:       1,
		Invalidated:    1,
		SuffixExamples: []string{"'Onthophagus sp.' → INVALID (suffix='Onthophagus sp.')"},
	}
	out := stats.Render()
	assert.Contains(t, out, "CLEANING RESULT")
	assert.Contains(t, out, "Species values modified: 2")
	assert.Contains(t, out, "INVALID")
}
