package speciescleaner

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Table is an in-memory copy of a delimited metadata file. All columns are
// preserved in order so the cleaned file round-trips everything the cleaner
// does not touch.
type Table struct {
	Header []string
	Rows   [][]string
	comma  rune
}

// TableColumns holds resolved column indexes. Species is always valid;
// the others are -1 when the dataset has no such column.
type TableColumns struct {
	Species    int
	Genus      int
	Subspecies int
	Suffix     int
}

// TableMetadata provides header information and automatic column suggestions
// so callers can present a mapping UI before reading the whole file.
type TableMetadata struct {
	Columns   []string
	Suggested ColumnConfig
}

// ReadTable reads a CSV or TSV file (chosen by extension) into a Table.
// The first row is treated as the header.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	comma := delimiterFor(path)
	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty file")
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	return &Table{Header: header, Rows: rows[1:], comma: comma}, nil
}

// WriteTable writes the table to path, creating parent directories. The
// delimiter follows the output extension.
func WriteTable(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := t.WriteTo(f, delimiterFor(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTo streams the table as delimited text to w.
func (t *Table) WriteTo(w io.Writer, comma rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// ResolveColumns maps the configured column selections onto the header.
// The species column is required; genus, subspecies and suffix resolve to -1
// when neither an explicit selection nor a candidate header matches.
func (t *Table) ResolveColumns(cfg ColumnConfig) (TableColumns, error) {
	candidates := getColumnCandidates()
	cols := TableColumns{Species: -1, Genus: -1, Subspecies: -1, Suffix: -1}
	var err error
	if cols.Species, err = t.pickColumn(cfg.Species, candidates.Species); err != nil {
		return cols, err
	}
	if cols.Species < 0 {
		return cols, errors.New("no species column found")
	}
	if cols.Genus, err = t.pickColumn(cfg.Genus, candidates.Genus); err != nil {
		return cols, err
	}
	if cols.Subspecies, err = t.pickColumn(cfg.Subspecies, candidates.Subspecies); err != nil {
		return cols, err
	}
	if cols.Suffix, err = t.pickColumn(cfg.Suffix, candidates.Suffix); err != nil {
		return cols, err
	}
	return cols, nil
}

func (t *Table) pickColumn(explicit string, candidates []string) (int, error) {
	if strings.TrimSpace(explicit) != "" {
		return t.matchExplicitColumn(explicit)
	}
	return findColumn(t.Header, candidates), nil
}

// matchExplicitColumn resolves a header name (case-insensitive) or a 1-based
// "#N" column index.
func (t *Table) matchExplicitColumn(explicit string) (int, error) {
	trimmed := strings.TrimSpace(explicit)
	for i, col := range t.Header {
		if strings.EqualFold(col, trimmed) {
			return i, nil
		}
	}
	if strings.HasPrefix(trimmed, "#") {
		idx, err := parseColumnIndex(trimmed)
		if err != nil {
			return -1, err
		}
		if idx >= len(t.Header) {
			return -1, fmt.Errorf("column index %s is out of range", trimmed)
		}
		return idx, nil
	}
	return -1, fmt.Errorf("column %q not found", explicit)
}

// EnsureColumn returns the index of the named column, appending an empty
// column of that name when the table does not have one yet.
func (t *Table) EnsureColumn(name string) int {
	for i, col := range t.Header {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	t.Header = append(t.Header, name)
	return len(t.Header) - 1
}

// Cell returns the cell at (row, col), or "" when the row is shorter than
// the header (ragged input is tolerated).
func (t *Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// SetCell stores a value, padding the row when it is shorter than col.
func (t *Table) SetCell(row, col int, value string) {
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
}

// ReadTableMetadata reads only the header row and returns automatic column
// suggestions for it.
func ReadTableMetadata(path string) (TableMetadata, error) {
	meta := TableMetadata{}
	f, err := os.Open(path)
	if err != nil {
		return meta, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.Comma = delimiterFor(path)
	reader.FieldsPerRecord = -1
	row, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return meta, nil
		}
		return meta, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	header := make([]string, len(row))
	for i, cell := range row {
		header[i] = cleanCell(cell)
	}
	meta.Columns = header
	candidates := getColumnCandidates()
	meta.Suggested = ColumnConfig{
		Species:    headerNameForIndex(header, findColumn(header, candidates.Species)),
		Genus:      headerNameForIndex(header, findColumn(header, candidates.Genus)),
		Subspecies: headerNameForIndex(header, findColumn(header, candidates.Subspecies)),
		Suffix:     headerNameForIndex(header, findColumn(header, candidates.Suffix)),
	}
	return meta, nil
}

func delimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

func findColumn(header []string, candidates []string) int {
	for i, col := range header {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	if trimmed == "" {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}

func headerNameForIndex(header []string, idx int) string {
	if idx < 0 {
		return ""
	}
	if name := header[idx]; name != "" {
		return name
	}
	return fmt.Sprintf("#%d", idx+1)
}
