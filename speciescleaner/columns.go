package speciescleaner

import "sync"

// ColumnCandidates defines possible header names for auto-detecting the
// taxonomy columns in CSV/TSV metadata files.
type ColumnCandidates struct {
	Species    []string `json:"species"`
	Genus      []string `json:"genus"`
	Subspecies []string `json:"subspecies"`
	Suffix     []string `json:"suffix"`
}

var (
	columnCandidatesMu  sync.RWMutex
	activeColumnOptions = defaultColumnCandidates()
)

func defaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		Species:    []string{"species", "species_name", "scientific_name", "学名", "種名"},
		Genus:      []string{"genus", "属名", "属"},
		Subspecies: []string{"subspecies", "亜種"},
		Suffix:     []string{"species_suffix", "suffix", "specimen_code"},
	}
}

// DefaultColumnCandidates returns the built-in column detection candidates.
func DefaultColumnCandidates() ColumnCandidates {
	return defaultColumnCandidates().clone()
}

// SetColumnCandidates updates the column detection candidates used during
// auto-detection. Fields left nil fall back to the built-in defaults.
func SetColumnCandidates(candidates ColumnCandidates) {
	columnCandidatesMu.Lock()
	defer columnCandidatesMu.Unlock()
	activeColumnOptions = candidates.withDefaults()
}

func getColumnCandidates() ColumnCandidates {
	columnCandidatesMu.RLock()
	defer columnCandidatesMu.RUnlock()
	return activeColumnOptions.clone()
}

func (c ColumnCandidates) withDefaults() ColumnCandidates {
	defaults := defaultColumnCandidates()
	return ColumnCandidates{
		Species:    pickStrings(c.Species, defaults.Species),
		Genus:      pickStrings(c.Genus, defaults.Genus),
		Subspecies: pickStrings(c.Subspecies, defaults.Subspecies),
		Suffix:     pickStrings(c.Suffix, defaults.Suffix),
	}
}

func (c ColumnCandidates) clone() ColumnCandidates {
	return ColumnCandidates{
		Species:    cloneStrings(c.Species),
		Genus:      cloneStrings(c.Genus),
		Subspecies: cloneStrings(c.Subspecies),
		Suffix:     cloneStrings(c.Suffix),
	}
}

func pickStrings(custom, fallback []string) []string {
	if custom == nil {
		return cloneStrings(fallback)
	}
	return cloneStrings(custom)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
