// Package selection filters metadata rows, and the matching alignment
// records, by a set of criteria.
//
// All criteria are optional and combine with AND. Include and exclude lists
// match ids exactly; field criteria match shell wildcard patterns, and a
// missing value ("NA" or empty) never matches.
package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aria-lang/phyloprep-go/internal/config"
	"github.com/aria-lang/phyloprep-go/internal/dates"
	"github.com/aria-lang/phyloprep-go/internal/fileio"
	"github.com/aria-lang/phyloprep-go/internal/glob"
	"github.com/aria-lang/phyloprep-go/internal/metadata"
	"github.com/aria-lang/phyloprep-go/internal/msa"
)

// RowDateLayout is the layout of dates in metadata rows. Months and days
// need not be zero-padded.
const RowDateLayout = dates.ISOLayout

// ErrNoAlignment is returned when a length criterion is set but no
// alignment is available to measure sequences.
var ErrNoAlignment = errors.New("no alignment given, cannot select by sequence length")

// Reasons a row is rejected. Field criteria use the field name.
const (
	ReasonExcluded    = "exclude"
	ReasonNotIncluded = "include"
	ReasonDate        = "daterange"
	ReasonLength      = "length"
)

// FieldCriterion restricts a metadata field to a list of patterns.
type FieldCriterion struct {
	Name     string
	Patterns []*glob.Pattern
}

// Match reports whether value matches one of the patterns.
func (f FieldCriterion) Match(value string) bool {
	if value == "" || value == metadata.Missing {
		return false
	}
	return glob.MatchAny(f.Patterns, value)
}

func (f FieldCriterion) String() string {
	parts := make([]string, len(f.Patterns))
	for i, p := range f.Patterns {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}

// Criteria is a compiled set of selection criteria.
type Criteria struct {
	Include   []string
	Exclude   []string
	DateRange *dates.Range
	Fields    []FieldCriterion
	// MinLength is the minimum ungapped sequence length; 0 disables it.
	MinLength int

	include map[string]bool
	exclude map[string]bool
}

// Build compiles raw selection values. An include or exclude value naming an
// existing file is read as a list of ids (first column, split on sep);
// otherwise it is a comma-separated list.
func Build(sel config.Selection, sep string) (*Criteria, error) {
	c := &Criteria{}
	var err error

	if c.Include, err = idList(sel.Include, sep); err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	if c.Exclude, err = idList(sel.Exclude, sep); err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}

	if sel.DateRange != "" {
		r, err := dates.ParseRange(sel.DateRange, dates.SlashLayout)
		if err != nil {
			return nil, err
		}
		c.DateRange = &r
	}

	if sel.Length != "" {
		n, err := strconv.Atoi(strings.TrimSpace(sel.Length))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("length: %q is not a non-negative integer", sel.Length)
		}
		c.MinLength = n
	}

	for _, f := range sel.Fields {
		fc := FieldCriterion{Name: f.Name}
		for _, p := range parseList(f.Value) {
			pat, err := glob.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("%s: bad pattern %q: %w", f.Name, p, err)
			}
			fc.Patterns = append(fc.Patterns, pat)
		}
		c.Fields = append(c.Fields, fc)
	}

	c.index()
	return c, nil
}

func (c *Criteria) index() {
	c.include = toSet(c.Include)
	c.exclude = toSet(c.Exclude)
}

func toSet(ids []string) map[string]bool {
	if ids == nil {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func idList(value, sep string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	if !fileio.IsFile(value) {
		return parseList(value), nil
	}

	f, err := fileio.OpenIn(value)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return metadata.ReadIDs(f, sep)
}

// Check reports a configuration that cannot be evaluated: a length
// criterion without an alignment, or a field criterion on a column the
// table does not have.
func (c *Criteria) Check(table *metadata.Table, aln *msa.Alignment) error {
	if c.MinLength > 0 && aln == nil {
		return ErrNoAlignment
	}
	if c.DateRange != nil && !table.Has(metadata.FieldDate) {
		return fmt.Errorf("date range given but table has no %q column", metadata.FieldDate)
	}
	for _, f := range c.Fields {
		if !table.Has(f.Name) {
			return fmt.Errorf("no column for selection field %q", f.Name)
		}
	}
	return nil
}

// Decision is the outcome of evaluating one row.
type Decision struct {
	Selected bool
	Reasons  []string
}

// Evaluate checks row against every criterion. aln may be nil when no
// length criterion is set; a row whose sequence is absent from the
// alignment fails the length criterion.
func (c *Criteria) Evaluate(row *metadata.Row, aln *msa.Alignment) Decision {
	if c.include == nil && c.exclude == nil {
		c.index()
	}

	d := Decision{Selected: true}
	reject := func(reason string) {
		d.Selected = false
		d.Reasons = append(d.Reasons, reason)
	}

	id := row.ID()

	if c.exclude[id] {
		reject(ReasonExcluded)
	}
	if c.include != nil && !c.include[id] {
		reject(ReasonNotIncluded)
	}

	if c.DateRange != nil {
		x, err := dates.Parse(row.Field(metadata.FieldDate), RowDateLayout)
		if err != nil || !c.DateRange.Contains(x) {
			reject(ReasonDate)
		}
	}

	for _, f := range c.Fields {
		if !f.Match(row.Field(f.Name)) {
			reject(f.Name)
		}
	}

	if c.MinLength > 0 {
		var rec *msa.Record
		if aln != nil {
			rec, _ = aln.Lookup(id)
		}
		if rec == nil || rec.Ungapped() < c.MinLength {
			reject(ReasonLength)
		}
	}

	return d
}

// Line is one entry of the criteria printout.
type Line struct {
	Name  string
	Value string
}

func (l Line) String() string {
	return fmt.Sprintf("%15s : %s", l.Name, l.Value)
}

// Describe lists the active criteria.
func (c *Criteria) Describe() []Line {
	lines := make([]Line, 0)
	if c.Include != nil {
		lines = append(lines, Line{config.KeyInclude, strings.Join(c.Include, ",")})
	}
	if c.Exclude != nil {
		lines = append(lines, Line{config.KeyExclude, strings.Join(c.Exclude, ",")})
	}
	if c.DateRange != nil {
		lines = append(lines, Line{config.KeyDateRange, c.DateRange.String()})
	}
	for _, f := range c.Fields {
		lines = append(lines, Line{f.Name, f.String()})
	}
	if c.MinLength > 0 {
		lines = append(lines, Line{config.KeyLength, strconv.Itoa(c.MinLength)})
	}
	return lines
}
