// Package metadata reads and writes sequence metadata tables.
//
// A table is a header line followed by rows, each split on a separator
// string. Cells are taken verbatim: there is no quoting, so rows written back
// out are byte-identical to what was read. Logical fields (id, date, country,
// ...) are located through a FieldMapping of accepted header names.
package metadata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Field names with special meaning to the selection tools.
const (
	FieldID        = "id"
	FieldAccession = "accession"
	FieldDate      = "date"
	FieldCountry   = "country"
	FieldProvince  = "province"
)

// Missing is the placeholder for an unknown value.
const Missing = "NA"

// ErrNoIDColumn is returned when no header cell maps to the id field.
var ErrNoIDColumn = errors.New("metadata table has no id column")

// FieldMapping maps a logical field to the header names that may hold it.
type FieldMapping map[string][]string

// DefaultMapping returns the column names of the standard metadata export.
func DefaultMapping() FieldMapping {
	return FieldMapping{
		FieldID:          {"sample_id"},
		FieldAccession:   {"accession"},
		FieldDate:        {"date"},
		FieldCountry:     {"country"},
		FieldProvince:    {"location"},
		"virus":          {"virus"},
		"sample_lab":     {"sample_lab"},
		"sequencing_lab": {"sequencing_lab"},
		"platform":       {"platform"},
		"GP82":           {"GP82"},
		"reference":      {"reference"},
	}
}

// Resolve finds the column index of every field present in header. When a
// field matches several columns the last one wins.
func (m FieldMapping) Resolve(header []string) map[string]int {
	idx := make(map[string]int)
	for field, names := range m {
		for i, h := range header {
			h = strings.TrimSpace(h)
			for _, n := range names {
				if h == n {
					idx[field] = i
				}
			}
		}
	}
	return idx
}

// Table describes the layout of a metadata table.
type Table struct {
	Header  []string
	Sep     string
	Columns map[string]int
}

// Fields returns the mapped field names in sorted order.
func (t *Table) Fields() []string {
	names := make([]string, 0, len(t.Columns))
	for k := range t.Columns {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Has reports whether field is mapped to a column.
func (t *Table) Has(field string) bool {
	_, ok := t.Columns[field]
	return ok
}

// Row is one data line of a table.
type Row struct {
	Cells []string
	Line  int
	table *Table
}

// Field returns the cell for a mapped field, or "" when the field is not
// mapped or the row is short.
func (r *Row) Field(name string) string {
	i, ok := r.table.Columns[name]
	if !ok || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// ID returns the row's id cell.
func (r *Row) ID() string {
	return r.Field(FieldID)
}

// Values returns every mapped field of the row.
func (r *Row) Values() map[string]string {
	out := make(map[string]string, len(r.table.Columns))
	for name := range r.table.Columns {
		out[name] = r.Field(name)
	}
	return out
}

func (r *Row) String() string {
	return strings.Join(r.Cells, r.table.Sep)
}

// Reader streams rows from a metadata table.
type Reader struct {
	scanner *bufio.Scanner
	table   *Table
	line    int
}

// splitLine trims surrounding whitespace from the line before splitting.
func splitLine(line, sep string) []string {
	return strings.Split(strings.TrimSpace(line), sep)
}

// NewReader reads the header from r and prepares to stream rows.
func NewReader(r io.Reader, sep string, mapping FieldMapping) (*Reader, error) {
	if sep == "" {
		return nil, fmt.Errorf("metadata separator cannot be empty")
	}
	if mapping == nil {
		mapping = DefaultMapping()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("reading header: empty table")
	}

	header := splitLine(scanner.Text(), sep)
	table := &Table{
		Header:  header,
		Sep:     sep,
		Columns: mapping.Resolve(header),
	}
	if !table.Has(FieldID) {
		return nil, ErrNoIDColumn
	}

	return &Reader{scanner: scanner, table: table, line: 1}, nil
}

// Table returns the layout of the table being read.
func (r *Reader) Table() *Table {
	return r.table
}

// Next returns the next non-blank row, or io.EOF.
func (r *Reader) Next() (*Row, error) {
	for r.scanner.Scan() {
		r.line++
		text := r.scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		return &Row{Cells: splitLine(text, r.table.Sep), Line: r.line, table: r.table}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	return nil, io.EOF
}

// ReadAll reads every remaining row.
func (r *Reader) ReadAll() ([]*Row, error) {
	rows := make([]*Row, 0)
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// ReadIDs returns the first column of every non-blank line.
func ReadIDs(r io.Reader, sep string) ([]string, error) {
	ids := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ids = append(ids, strings.SplitN(line, sep, 2)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ids: %w", err)
	}
	return ids, nil
}

// Writer writes rows of a table.
type Writer struct {
	w   *bufio.Writer
	sep string
}

// NewWriter creates a table writer using sep between cells.
func NewWriter(w io.Writer, sep string) *Writer {
	return &Writer{w: bufio.NewWriter(w), sep: sep}
}

// WriteCells writes one line.
func (w *Writer) WriteCells(cells []string) error {
	if _, err := w.w.WriteString(strings.Join(cells, w.sep)); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// WriteRow writes a row read from a table.
func (w *Writer) WriteRow(r *Row) error {
	return w.WriteCells(r.Cells)
}

// Flush writes any buffered data.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
