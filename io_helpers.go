package main

import (
	"fmt"
	"strings"

	"yashubustudio/speciescleaner/speciescleaner"
)

// autoChoiceLabel is the first entry of every column picker; it stands for
// automatic header detection.
const autoChoiceLabel = "（自動検出）"

type columnChoice struct {
	Index int
	Label string
}

// buildColumnChoices lists the table's columns for the mapping selects,
// each with a sample value from the first non-empty cell.
func buildColumnChoices(t *speciescleaner.Table) []columnChoice {
	choices := make([]columnChoice, 0, len(t.Header))
	for col, header := range t.Header {
		label := fmt.Sprintf("[%d] %s", col+1, header)
		if header == "" {
			label = fmt.Sprintf("[%d] 列%d", col+1, col+1)
		}
		if sample := columnSample(t, col); sample != "" {
			label = fmt.Sprintf("%s (例: %s)", label, sample)
		}
		choices = append(choices, columnChoice{Index: col, Label: label})
	}
	return choices
}

func columnSample(t *speciescleaner.Table, col int) string {
	for row := range t.Rows {
		val := strings.TrimSpace(t.Cell(row, col))
		if val != "" {
			return truncateSampleValue(val, 20)
		}
	}
	return ""
}

func truncateSampleValue(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "…"
}

// choiceLabels returns the select options: auto detection first, then one
// entry per column.
func choiceLabels(choices []columnChoice) []string {
	labels := make([]string, 0, len(choices)+1)
	labels = append(labels, autoChoiceLabel)
	for _, c := range choices {
		labels = append(labels, c.Label)
	}
	return labels
}

// choiceValue converts a selected label back to a ColumnConfig value:
// "" for auto detection, "#N" otherwise.
func choiceValue(choices []columnChoice, selected string) string {
	for _, c := range choices {
		if c.Label == selected {
			return fmt.Sprintf("#%d", c.Index+1)
		}
	}
	return ""
}

// selectedColumnConfig converts the four picker selections into a
// ColumnConfig. The caller snapshots the selections on the main thread, so a
// background reload that repopulates the selects cannot change them mid-run.
func selectedColumnConfig(choices []columnChoice, species, genus, subspecies, suffix string) speciescleaner.ColumnConfig {
	return speciescleaner.ColumnConfig{
		Species:    choiceValue(choices, species),
		Genus:      choiceValue(choices, genus),
		Subspecies: choiceValue(choices, subspecies),
		Suffix:     choiceValue(choices, suffix),
	}
}

// labelForColumn finds the choice label for a resolved column index, falling
// back to auto detection.
func labelForColumn(choices []columnChoice, idx int) string {
	for _, c := range choices {
		if c.Index == idx {
			return c.Label
		}
	}
	return autoChoiceLabel
}
