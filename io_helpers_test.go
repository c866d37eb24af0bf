package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yashubustudio/speciescleaner/speciescleaner"
)

func TestSelectedColumnConfig(t *testing.T) {
	choices := []columnChoice{
		{Index: 0, Label: "[1] id"},
		{Index: 1, Label: "[2] species (例: Onthophagus incensus)"},
		{Index: 2, Label: "[3] genus"},
	}

	cfg := selectedColumnConfig(choices,
		choices[1].Label, choices[2].Label, autoChoiceLabel, "")
	assert.Equal(t, speciescleaner.ColumnConfig{Species: "#2", Genus: "#3"}, cfg)
}

// A snapshot taken against the choice list the user saw keeps mapping their
// selection to the column they picked, even after a reload swapped the list.
func TestSelectedColumnConfigSurvivesChoiceSwap(t *testing.T) {
	shown := []columnChoice{
		{Index: 3, Label: "[4] species (例: Onthophagus sp.)"},
	}
	selected := shown[0].Label

	cfg := selectedColumnConfig(shown, selected, "", "", "")
	assert.Equal(t, "#4", cfg.Species)

	// The same label against a different list no longer matches and falls
	// back to auto detection instead of picking a wrong column.
	swapped := []columnChoice{{Index: 0, Label: "[1] sample_id"}}
	cfg = selectedColumnConfig(swapped, selected, "", "", "")
	assert.Equal(t, speciescleaner.ColumnConfig{}, cfg)
}
