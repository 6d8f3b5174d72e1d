// Package phyloprep provides a high-level API for preparing sequence data
// for phylogenetic inference.
//
// It exposes date conversion, alignment statistics and column histograms
// through a small set of functions, and the full workflow steps (selection,
// histograms, XML generation) through their Job types.
//
// Example usage:
//
//	d, err := phyloprep.ParseTipDate("2014-06")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%.4f in [%.4f, %.4f]\n", d.Date, d.Lower, d.Upper)
//
//	aln, err := phyloprep.ReadAlignment("ebov.fas")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h, err := phyloprep.Histogram(aln)
package phyloprep

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aria-lang/phyloprep-go/internal/beast"
	"github.com/aria-lang/phyloprep-go/internal/config"
	"github.com/aria-lang/phyloprep-go/internal/dates"
	"github.com/aria-lang/phyloprep-go/internal/hist"
	"github.com/aria-lang/phyloprep-go/internal/msa"
	"github.com/aria-lang/phyloprep-go/internal/selection"
	"github.com/aria-lang/phyloprep-go/internal/stats"
)

// Re-export types for convenience
type (
	Alignment   = msa.Alignment
	Record      = msa.Record
	TipDate     = dates.TipDate
	DateRange   = dates.Range
	Hist        = hist.Histogram
	Tip         = beast.Tip
	RecordStats = stats.RecordStats
	SetStats    = stats.SetStats
	Criteria    = selection.Criteria
	Selection   = config.Selection

	SelectJob  = selection.Job
	HistJob    = hist.Job
	MakeXMLJob = beast.Job
)

// Alphabet lists the histogram symbols in column order.
const Alphabet = hist.Alphabet

// Date precisions
const (
	Day   = dates.Day
	Month = dates.Month
	Year  = dates.Year
)

// DateString converts a possibly partial calendar date to a calendar string
// or, with calendar false, to a decimal year with digits decimals (-1 for
// the default of six).
func DateString(year, month, day string, calendar bool, digits int) (string, error) {
	return dates.DateString(year, month, day, calendar, digits)
}

// ParseTipDate parses a full or partial ISO date into a point date and
// bounds.
func ParseTipDate(s string) (TipDate, error) {
	return dates.ParseTipDate(s)
}

// ParseDateRange parses "lower-upper" as decimal years or yyyy/mm/dd dates.
func ParseDateRange(s string) (DateRange, error) {
	return dates.ParseRange(s, dates.SlashLayout)
}

// ReadAlignment reads a FASTA alignment from a file (gzip aware).
func ReadAlignment(filename string) (*Alignment, error) {
	return msa.ReadFile(filename)
}

// ParseAlignment reads a FASTA alignment from r.
func ParseAlignment(r io.Reader) (*Alignment, error) {
	return msa.Read(r)
}

// ParseAlignmentString reads a FASTA alignment held in a string.
func ParseAlignmentString(fasta string) (*Alignment, error) {
	aln, err := msa.Read(strings.NewReader(fasta))
	if err != nil {
		return nil, err
	}
	if aln.Len() == 0 {
		return nil, &msa.EmptyAlignmentError{}
	}
	return aln, nil
}

// WriteAlignment writes records to a FASTA file.
func WriteAlignment(filename string, records []*Record) error {
	return msa.WriteFile(filename, records)
}

// Histogram counts the characters in each alignment column.
func Histogram(aln *Alignment) (*Hist, error) {
	return hist.Count(aln)
}

// Lengths returns per-record statistics, keyed with sep.
func Lengths(aln *Alignment, sep string) []*RecordStats {
	out := make([]*RecordStats, len(aln.Records))
	for i, r := range aln.Records {
		out[i] = stats.FromRecord(r, sep)
	}
	return out
}

// Summary calculates length statistics over all records.
func Summary(aln *Alignment) (*SetStats, error) {
	return stats.FromRecords(aln.Records)
}

// Tips reads the tip dates of an alignment whose ids end in a date field.
func Tips(aln *Alignment) ([]Tip, error) {
	return beast.Tips(aln)
}

// Extremes returns the ids of the oldest and most recent tips.
func Extremes(tips []Tip) (oldest, newest []string) {
	return beast.Extremes(tips)
}

// Select runs a metadata and alignment selection.
func Select(ctx context.Context, job SelectJob) (*selection.Result, error) {
	return selection.Run(ctx, job)
}

// Histograms writes column histograms of several alignments.
func Histograms(ctx context.Context, job HistJob) ([]hist.Output, error) {
	return hist.Run(ctx, job)
}

// MakeXML generates inference input files from run configs.
func MakeXML(ctx context.Context, job MakeXMLJob) ([]beast.Output, error) {
	return beast.Run(ctx, job)
}

// Version returns the phyloprep version.
func Version() string {
	return "1.0.0"
}

// Info returns information about phyloprep.
func Info() string {
	return fmt.Sprintf(`phyloprep v%s - Phylogenetic Workflow Preparation Tools

Features:
  - Calendar to decimal year conversion, partial dates included
  - Metadata and alignment selection by ids, dates, places and length
  - Per-column alignment character histograms
  - Inference XML generation with tip date estimation
  - Launch scripts for local and cluster runs
`, Version())
}
