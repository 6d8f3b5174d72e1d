// Package beast generates XML input files for a Bayesian phylogenetic
// inference tool from run configurations and sequence alignments.
//
// Tip dates are read from the last '|'-separated field of each sequence id.
// Partially known dates ("2014-06", "2014") become uncertain tips whose
// sampling date is estimated between bounds.
package beast

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aria-lang/phyloprep-go/internal/dates"
	"github.com/aria-lang/phyloprep-go/internal/msa"
)

// DateSep separates the fields of a sequence id; the date is the last one.
const DateSep = "|"

// Tip is an aligned sequence with its sampling date.
type Tip struct {
	ID   string
	Seq  string
	Date dates.TipDate
}

// Tips reads the tip dates of every record of aln, in file order.
func Tips(aln *msa.Alignment) ([]Tip, error) {
	tips := make([]Tip, 0, aln.Len())
	for _, r := range aln.Records {
		d, err := dates.ParseTipDate(r.Field(DateSep, -1))
		if err != nil {
			return nil, fmt.Errorf("sequence %s: %w", r.ID, err)
		}
		tips = append(tips, Tip{ID: r.ID, Seq: r.Seq, Date: d})
	}
	return tips, nil
}

// SequenceBlock renders the sequence elements of an alignment block.
// Sequence ids get msaID as a suffix so that several alignments can share
// the same taxa.
func SequenceBlock(tips []Tip, msaID string) string {
	var sb strings.Builder
	for _, t := range tips {
		fmt.Fprintf(&sb, "\t\t\t<sequence id=\"%s:%s\" taxon=\"%s\" totalcount=\"4\" value=\"%s\"/>\n",
			t.ID, msaID, t.ID, t.Seq)
	}
	return sb.String()
}

// DateRange returns the oldest and most recent point dates.
func DateRange(tips []Tip) (oldest, newest float64) {
	oldest, newest = math.Inf(1), math.Inf(-1)
	for _, t := range tips {
		oldest = math.Min(oldest, t.Date.Date)
		newest = math.Max(newest, t.Date.Date)
	}
	return oldest, newest
}

// Extremes returns the ids of the oldest and most recent tips.
func Extremes(tips []Tip) (oldest, newest []string) {
	lo, hi := DateRange(tips)
	for _, t := range tips {
		if t.Date.Date == lo {
			oldest = append(oldest, t.ID)
		}
		if t.Date.Date == hi {
			newest = append(newest, t.ID)
		}
	}
	return oldest, newest
}

// Uncertain returns the tips whose date is an interval.
func Uncertain(tips []Tip) []Tip {
	out := make([]Tip, 0)
	for _, t := range tips {
		if t.Date.Uncertain() {
			out = append(out, t)
		}
	}
	return out
}

// DateTrait renders the date trait value: one "id=date" entry per tip.
func DateTrait(tips []Tip) string {
	traits := make([]string, len(tips))
	for i, t := range tips {
		traits[i] = fmt.Sprintf("\n\t\t\t\t\t%s=%.13f", t.ID, t.Date.Date)
	}
	return strings.Join(traits, ",") + "\n"
}

// Priors holds the XML fragments for estimating uncertain tip dates.
type Priors struct {
	Distributions string
	Operators     string
	Loggers       string
}

// upper clamps a tip's latest date to maxDate; sampling dates cannot lie
// after the most recent sample.
func upper(t Tip, maxDate float64) float64 {
	return math.Min(t.Date.Upper, maxDate)
}

// TipDatePriors renders a uniform prior, a random walk operator and a
// logger for every uncertain tip.
func TipDatePriors(tips []Tip, maxDate float64) Priors {
	var dist, ops, logs strings.Builder
	for _, t := range Uncertain(tips) {
		fmt.Fprintf(&dist, "\n\t\t\t<distribution id=\"tipDates:%s\" monophyletic=\"false\" spec=\"beast.math.distributions.MRCAPrior\" tipsonly=\"true\" tree=\"@Tree.t:tree\">\n", t.ID)
		fmt.Fprintf(&dist, "\t\t\t\t<taxonset id=\"TaxonSet:%s\" spec=\"TaxonSet\">\n", t.ID)
		fmt.Fprintf(&dist, "\t\t\t\t\t<taxon id=\"%s\" spec=\"Taxon\"/>\n", t.ID)
		dist.WriteString("\t\t\t\t</taxonset>\n")
		fmt.Fprintf(&dist, "\t\t\t\t<distr lower=\"%f\" offset=\"0.0\" spec=\"beast.math.distributions.Uniform\" upper=\"%f\"/>\n",
			t.Date.Lower, upper(t, maxDate))
		dist.WriteString("\t\t\t</distribution>\n")

		fmt.Fprintf(&ops, "\n\t\t<operator windowSize=\"1\" spec=\"SampledNodeDateRandomWalker\" taxonset=\"@TaxonSet:%s\" tree=\"@Tree.t:tree\" weight=\"1.0\"/>\n", t.ID)

		fmt.Fprintf(&logs, "\t\t<log idref=\"tipDates:%s\"/>\n", t.ID)
	}
	return Priors{Distributions: dist.String(), Operators: ops.String(), Loggers: logs.String()}
}

// TraitMismatchError reports two alignments whose tips disagree.
type TraitMismatchError struct {
	ID     string
	Reason string
}

func (e *TraitMismatchError) Error() string {
	if e.ID == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.ID, e.Reason)
}

// CompareTraits checks that a and b hold the same tips with the same dates.
func CompareTraits(a, b []Tip) error {
	if len(a) != len(b) {
		return &TraitMismatchError{Reason: fmt.Sprintf("alignments do not have the same number of sequences (%d vs %d)", len(a), len(b))}
	}

	other := make(map[string]float64, len(b))
	for _, t := range b {
		other[t.ID] = t.Date.Date
	}
	for _, t := range a {
		d, ok := other[t.ID]
		if !ok {
			return &TraitMismatchError{ID: t.ID, Reason: "missing from second alignment"}
		}
		if d != t.Date.Date {
			return &TraitMismatchError{ID: t.ID, Reason: fmt.Sprintf("dates not equal (%.5f vs %.5f)", t.Date.Date, d)}
		}
	}
	return nil
}

// WriteDatesTable writes a tab-separated table of every tip's point date
// and bounds. Upper bounds are clamped to the most recent sample.
func WriteDatesTable(w io.Writer, tips []Tip) error {
	_, maxDate := DateRange(tips)

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "id\tdate\tlower\tupper\n")
	for _, t := range tips {
		lower, up := t.Date.Date, t.Date.Date
		if t.Date.Uncertain() {
			lower, up = t.Date.Lower, upper(t, maxDate)
		}
		fmt.Fprintf(bw, "%s\t%f\t%f\t%f\n", t.ID, t.Date.Date, lower, up)
	}
	return bw.Flush()
}
