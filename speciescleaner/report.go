package speciescleaner

import (
	"fmt"
	"strings"
)

const bannerWidth = 70

func banner(title string) string {
	line := strings.Repeat("=", bannerWidth)
	return line + "\n" + title + "\n" + line
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Render formats the analysis pass as the human-readable report shown before
// the user confirms cleaning.
func (r *AnalysisReport) Render() string {
	var b strings.Builder
	b.WriteString(banner("SPECIES NAME ANALYSIS"))
	b.WriteString("\n\nSummary:\n")
	fmt.Fprintf(&b, "  Total species values: %d\n", r.Total)
	fmt.Fprintf(&b, "  Empty: %d (%.1f%%)\n", r.Empty, pct(r.Empty, r.Total))
	fmt.Fprintf(&b, "  sp./specimen codes (invalid): %d (%.1f%%)\n", r.Placeholder, pct(r.Placeholder, r.Total))
	fmt.Fprintf(&b, "  Valid binomials with suffix: %d (%.1f%%)\n", r.WithSuffix, pct(r.WithSuffix, r.Total))
	fmt.Fprintf(&b, "  Valid trinomials (subspecies): %d (%.1f%%)\n", r.Trinomial, pct(r.Trinomial, r.Total))
	fmt.Fprintf(&b, "  Clean binomials: %d (%.1f%%)\n", r.Clean, pct(r.Clean, r.Total))

	writeExampleSection(&b, "Examples of sp. variants (will be invalidated):", r.PlaceholderExamples)
	writeExampleSection(&b, "Examples with suffixes (will be cleaned):", r.SuffixExamples)
	writeExampleSection(&b, "Examples of trinomials (will extract subspecies):", r.TrinomialExamples)
	writeExampleSection(&b, "Examples of clean binomials (no change):", r.CleanExamples)
	return b.String()
}

// Render formats the result of a cleaning pass.
func (s *CleanStats) Render() string {
	var b strings.Builder
	b.WriteString(banner("CLEANING RESULT"))
	b.WriteString("\n\nChanges made:\n")
	fmt.Fprintf(&b, "  Species values modified: %d\n", s.Modified)
	fmt.Fprintf(&b, "  Suffixes extracted: %d\n", s.Suffixes)
	fmt.Fprintf(&b, "  Trinomials identified: %d\n", s.Trinomials)
	fmt.Fprintf(&b, "  Species invalidated (sp./specimen codes): %d\n", s.Invalidated)

	writeExampleSection(&b, "Examples of suffix extraction:", s.SuffixExamples)
	writeExampleSection(&b, "Examples of trinomials (subspecies):", s.TrinomialExamples)
	return b.String()
}

func writeExampleSection(b *strings.Builder, title string, examples []string) {
	if len(examples) == 0 {
		return
	}
	b.WriteString("\n" + title + "\n")
	for _, ex := range examples {
		b.WriteString("  ~ " + ex + "\n")
	}
}
