package speciescleaner

import (
	"fmt"
	"log"
	"runtime"
	"sync"
)

// Example list caps, matching the analysis report layout.
const (
	maxPlaceholderExamples = 10
	maxSuffixExamples      = 10
	maxTrinomialExamples   = 5
	maxCleanExamples       = 5
)

// Service orchestrates analysis and cleaning passes over a metadata table.
// Classification itself is pure; the service owns configuration, write-back
// policy and reporting.
type Service struct {
	cfgMu sync.RWMutex
	cfg   Config

	logger *log.Logger
}

// NewService constructs a service with the given configuration.
func NewService(cfg Config, logger *log.Logger) *Service {
	cfg.ApplyDefaults()
	return &Service{cfg: cfg, logger: logger}
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig replaces the configuration.
func (s *Service) UpdateConfig(cfg Config) {
	cfg.ApplyDefaults()
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// record extracts the normalized classifier inputs for one row.
func record(t *Table, cols TableColumns, row int) Record {
	rec := Record{Species: t.Cell(row, cols.Species)}
	if cols.Genus >= 0 {
		rec.Genus = t.Cell(row, cols.Genus)
	}
	return NormalizeRecord(rec)
}

// Analyze runs a non-mutating classification pass and buckets every row:
// empty, placeholder/invalid, suffix-bearing, trinomial, or already clean.
func (s *Service) Analyze(t *Table, cols TableColumns) *AnalysisReport {
	report := &AnalysisReport{}
	for i := range t.Rows {
		rec := record(t, cols, i)
		report.Total++
		if rec.Species == "" {
			report.Empty++
			continue
		}
		res := Classify(rec.Species, rec.Genus)
		switch {
		case !res.Valid():
			report.Placeholder++
			if len(report.PlaceholderExamples) < maxPlaceholderExamples {
				report.PlaceholderExamples = append(report.PlaceholderExamples, rec.Species)
			}
		case res.Suffix != "":
			report.WithSuffix++
			if len(report.SuffixExamples) < maxSuffixExamples {
				report.SuffixExamples = append(report.SuffixExamples,
					fmt.Sprintf("%s → binomial='%s' + suffix='%s'", rec.Species, res.Binomial, res.Suffix))
			}
		case res.Trinomial != "":
			report.Trinomial++
			if len(report.TrinomialExamples) < maxTrinomialExamples {
				report.TrinomialExamples = append(report.TrinomialExamples,
					fmt.Sprintf("%s → binomial='%s', trinomial='%s'", rec.Species, res.Binomial, res.Trinomial))
			}
		default:
			report.Clean++
			if len(report.CleanExamples) < maxCleanExamples {
				report.CleanExamples = append(report.CleanExamples, rec.Species)
			}
		}
	}
	s.logf("Analyzed %d rows: %d empty, %d placeholder, %d with suffix, %d trinomial, %d clean",
		report.Total, report.Empty, report.Placeholder, report.WithSuffix, report.Trinomial, report.Clean)
	return report
}

// Clean rewrites the table in place: the species column receives the
// canonical binomial (cleared when none could be extracted), the subspecies
// column receives the trinomial only when one was found, and the suffix
// column receives the extracted remainder only when one was found. Missing
// subspecies/suffix columns are appended. Rows are independent, so the pass
// is sharded across a bounded worker pool.
func (s *Service) Clean(t *Table, cols TableColumns) *CleanStats {
	if cols.Subspecies < 0 {
		cols.Subspecies = t.EnsureColumn("subspecies")
	}
	if cols.Suffix < 0 {
		cols.Suffix = t.EnsureColumn("species_suffix")
	}

	originals := make([]string, len(t.Rows))
	for i := range t.Rows {
		originals[i] = t.Cell(i, cols.Species)
	}

	workers := s.Config().Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(t.Rows) {
		workers = len(t.Rows)
	}

	stats := &CleanStats{}
	if workers <= 1 {
		s.cleanRange(t, cols, 0, len(t.Rows), stats)
	} else {
		partials := make([]CleanStats, workers)
		var wg sync.WaitGroup
		chunk := (len(t.Rows) + workers - 1) / workers
		for w := 0; w < workers; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > len(t.Rows) {
				hi = len(t.Rows)
			}
			if lo >= hi {
				continue
			}
			wg.Add(1)
			go func(w, lo, hi int) {
				defer wg.Done()
				s.cleanRange(t, cols, lo, hi, &partials[w])
			}(w, lo, hi)
		}
		wg.Wait()
		for _, p := range partials {
			stats.Modified += p.Modified
			stats.Suffixes += p.Suffixes
			stats.Trinomials += p.Trinomials
			stats.Invalidated += p.Invalidated
		}
	}

	collectCleanExamples(t, cols, originals, stats)
	s.logf("Cleaned %d rows: %d modified, %d suffixes, %d trinomials, %d invalidated",
		len(t.Rows), stats.Modified, stats.Suffixes, stats.Trinomials, stats.Invalidated)
	return stats
}

// cleanRange applies the write-back policy to rows [lo, hi). Each worker
// touches a disjoint row range, so no synchronization is needed.
func (s *Service) cleanRange(t *Table, cols TableColumns, lo, hi int, stats *CleanStats) {
	for i := lo; i < hi; i++ {
		rec := record(t, cols, i)
		if rec.Species == "" {
			continue
		}
		res := Classify(rec.Species, rec.Genus)
		if res.Binomial != rec.Species {
			stats.Modified++
		}
		if res.Suffix != "" {
			t.SetCell(i, cols.Suffix, res.Suffix)
			stats.Suffixes++
		}
		if res.Trinomial != "" {
			t.SetCell(i, cols.Subspecies, res.Trinomial)
			stats.Trinomials++
		}
		if !res.Valid() && res.Suffix != "" {
			stats.Invalidated++
		}
		t.SetCell(i, cols.Species, res.Binomial)
	}
}

// collectCleanExamples walks the cleaned table and picks example lines for
// the report, pairing each with the pre-clean species value.
func collectCleanExamples(t *Table, cols TableColumns, originals []string, stats *CleanStats) {
	for i := range t.Rows {
		suffix := t.Cell(i, cols.Suffix)
		if suffix != "" && len(stats.SuffixExamples) < maxSuffixExamples {
			species := t.Cell(i, cols.Species)
			if species != "" {
				stats.SuffixExamples = append(stats.SuffixExamples,
					fmt.Sprintf("'%s' → species='%s' + suffix='%s'", originals[i], species, suffix))
			} else {
				stats.SuffixExamples = append(stats.SuffixExamples,
					fmt.Sprintf("'%s' → INVALID (suffix='%s')", originals[i], suffix))
			}
		}
		subspecies := t.Cell(i, cols.Subspecies)
		if subspecies != "" && len(stats.TrinomialExamples) < maxTrinomialExamples {
			stats.TrinomialExamples = append(stats.TrinomialExamples,
				fmt.Sprintf("'%s' → binomial='%s', trinomial='%s'", originals[i], t.Cell(i, cols.Species), subspecies))
		}
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
