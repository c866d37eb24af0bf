package speciescleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() (*Table, TableColumns) {
	table := &Table{
		Header: []string{"id", "species", "genus", "subspecies", "species_suffix"},
		Rows: [][]string{
			{"1", "Onthophagus incensus", "Onthophagus", "", ""},
			{"2", "Onthophagus incensusASolis02", "Onthophagus", "", ""},
			{"3", "Onthophagus sp.", "Onthophagus", "", ""},
			{"4", "Onthophagus incensus auratus", "Onthophagus", "", ""},
			{"5", "", "Onthophagus", "", ""},
			{"6", "Onthophagus Onthophagus incensus", "Onthophagus", "", ""},
		},
	}
	cols, err := table.ResolveColumns(ColumnConfig{})
	if err != nil {
		panic(err)
	}
	return table, cols
}

func TestServiceAnalyze(t *testing.T) {
	table, cols := sampleTable()
	svc := NewService(Config{}, nil)
	report := svc.Analyze(table, cols)

	assert.Equal(t, 6, report.Total)
	assert.Equal(t, 1, report.Empty)
	assert.Equal(t, 1, report.Placeholder)
	assert.Equal(t, 1, report.WithSuffix)
	assert.Equal(t, 1, report.Trinomial)
	assert.Equal(t, 2, report.Clean)

	assert.Equal(t, []string{"Onthophagus sp."}, report.PlaceholderExamples)
	require.Len(t, report.SuffixExamples, 1)
	assert.Contains(t, report.SuffixExamples[0], "suffix='ASolis02'")

	// Analysis must not touch the table.
	assert.Equal(t, "Onthophagus incensusASolis02", table.Cell(1, cols.Species))
}

func TestServiceClean(t *testing.T) {
	table, cols := sampleTable()
	svc := NewService(Config{Workers: 1}, nil)
	stats := svc.Clean(table, cols)

	// Row 1: already clean, untouched.
	assert.Equal(t, "Onthophagus incensus", table.Cell(0, cols.Species))
	assert.Equal(t, "", table.Cell(0, cols.Suffix))

	// Row 2: glued specimen code extracted.
	assert.Equal(t, "Onthophagus incensus", table.Cell(1, cols.Species))
	assert.Equal(t, "ASolis02", table.Cell(1, cols.Suffix))

	// Row 3: placeholder invalidated, original preserved as suffix.
	assert.Equal(t, "", table.Cell(2, cols.Species))
	assert.Equal(t, "Onthophagus sp.", table.Cell(2, cols.Suffix))

	// Row 4: trinomial extracted into the subspecies column.
	assert.Equal(t, "Onthophagus incensus", table.Cell(3, cols.Species))
	assert.Equal(t, "Onthophagus incensus auratus", table.Cell(3, cols.Subspecies))

	// Row 5: empty input skipped entirely.
	assert.Equal(t, "", table.Cell(4, cols.Species))
	assert.Equal(t, "", table.Cell(4, cols.Suffix))

	// Row 6: doubled genus stripped.
	assert.Equal(t, "Onthophagus incensus", table.Cell(5, cols.Species))

	assert.Equal(t, 4, stats.Modified)
	assert.Equal(t, 2, stats.Suffixes)
	assert.Equal(t, 1, stats.Trinomials)
	assert.Equal(t, 1, stats.Invalidated)

	require.NotEmpty(t, stats.SuffixExamples)
	assert.Contains(t, stats.SuffixExamples[1], "INVALID")
	require.Len(t, stats.TrinomialExamples, 1)
	assert.Contains(t, stats.TrinomialExamples[0], "trinomial='Onthophagus incensus auratus'")
}

func TestServiceCleanAppendsMissingColumns(t *testing.T) {
	table := &Table{
		Header: []string{"species"},
		Rows: [][]string{
			{"Onthophagus incensusASolis02"},
			{"Onthophagus incensus auratus"},
		},
	}
	cols, err := table.ResolveColumns(ColumnConfig{})
	require.NoError(t, err)
	svc := NewService(Config{}, nil)
	svc.Clean(table, cols)

	assert.Equal(t, []string{"species", "subspecies", "species_suffix"}, table.Header)
	assert.Equal(t, "ASolis02", table.Cell(0, 2))
	assert.Equal(t, "Onthophagus incensus auratus", table.Cell(1, 1))
}

func TestServiceCleanPreservesExistingValues(t *testing.T) {
	table := &Table{
		Header: []string{"species", "subspecies", "species_suffix"},
		Rows: [][]string{
			// Clean binomial: pre-existing subspecies and suffix stay.
			{"Onthophagus incensus", "previous trinomial", "previous suffix"},
		},
	}
	cols, err := table.ResolveColumns(ColumnConfig{})
	require.NoError(t, err)
	svc := NewService(Config{}, nil)
	svc.Clean(table, cols)

	assert.Equal(t, "previous trinomial", table.Cell(0, cols.Subspecies))
	assert.Equal(t, "previous suffix", table.Cell(0, cols.Suffix))
}

func TestServiceCleanParallelMatchesSequential(t *testing.T) {
	build := func() (*Table, TableColumns) {
		table := &Table{Header: []string{"species", "genus"}}
		seed := []string{
			"Onthophagus incensus",
			"Onthophagus incensusASolis02",
			"Onthophagus sp._13YB",
			"Onthophagus incensus auratus extra",
			"Onthophagus aff. incensus",
			"incensus",
			"",
		}
		for i := 0; i < 200; i++ {
			table.Rows = append(table.Rows, []string{seed[i%len(seed)], "Onthophagus"})
		}
		cols, err := table.ResolveColumns(ColumnConfig{})
		if err != nil {
			panic(err)
		}
		return table, cols
	}

	seqTable, seqCols := build()
	seqStats := NewService(Config{Workers: 1}, nil).Clean(seqTable, seqCols)

	parTable, parCols := build()
	parStats := NewService(Config{Workers: 8}, nil).Clean(parTable, parCols)

	assert.Equal(t, seqTable.Rows, parTable.Rows)
	assert.Equal(t, seqStats, parStats)
}
