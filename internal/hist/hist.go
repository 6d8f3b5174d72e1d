// Package hist counts the characters in each column of an alignment.
//
// Counting is case-insensitive. Characters outside Alphabet are reported
// per column and left out of the counts and totals.
package hist

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aria-lang/phyloprep-go/internal/msa"
	"github.com/aria-lang/phyloprep-go/internal/numfmt"
)

// Alphabet lists the counted symbols in output order: nucleotides, IUPAC
// ambiguity codes, N, gap and unknown.
const Alphabet = "ACGTRYWSKMDVHBN-?"

var symbolIndex [256]int

func init() {
	for i := range symbolIndex {
		symbolIndex[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		symbolIndex[Alphabet[i]] = i
	}
}

// SymbolIndex returns the position of c in Alphabet, or -1. Lower-case
// letters map to their upper-case symbol.
func SymbolIndex(c byte) int {
	if 'a' <= c && c <= 'z' {
		c -= 'a' - 'A'
	}
	return symbolIndex[c]
}

// Header returns the CSV header line (without newline).
func Header() string {
	cols := make([]string, len(Alphabet))
	for i := 0; i < len(Alphabet); i++ {
		cols[i] = Alphabet[i : i+1]
	}
	return strings.Join(cols, ",")
}

// Histogram holds per-column symbol counts.
type Histogram struct {
	// Counts[i][j] is the number of Alphabet[j] in column i.
	Counts [][]int
	// Unknown[i] counts characters outside the alphabet in column i; nil
	// when there are none.
	Unknown []map[byte]int
}

// Count builds the histogram of aln. All records must have the same length.
func Count(aln *msa.Alignment) (*Histogram, error) {
	width, err := aln.Width()
	if err != nil {
		return nil, err
	}

	h := &Histogram{
		Counts:  make([][]int, width),
		Unknown: make([]map[byte]int, width),
	}
	for i := range h.Counts {
		h.Counts[i] = make([]int, len(Alphabet))
	}

	for i := 0; i < width; i++ {
		for _, c := range aln.Column(i) {
			if j := SymbolIndex(c); j >= 0 {
				h.Counts[i][j]++
				continue
			}
			if h.Unknown[i] == nil {
				h.Unknown[i] = make(map[byte]int)
			}
			h.Unknown[i][c]++
		}
	}

	return h, nil
}

// Width returns the number of columns.
func (h *Histogram) Width() int {
	return len(h.Counts)
}

// Total returns the number of in-alphabet characters in column i.
func (h *Histogram) Total(i int) int {
	total := 0
	for _, n := range h.Counts[i] {
		total += n
	}
	return total
}

// Get returns the count of symbol c in column i.
func (h *Histogram) Get(i int, c byte) int {
	j := SymbolIndex(c)
	if j < 0 {
		return 0
	}
	return h.Counts[i][j]
}

// Proportions divides each column by its total. Columns without any
// in-alphabet character stay all zero.
func (h *Histogram) Proportions() [][]float64 {
	out := make([][]float64, len(h.Counts))
	for i, row := range h.Counts {
		out[i] = make([]float64, len(row))
		total := h.Total(i)
		if total == 0 {
			continue
		}
		for j, n := range row {
			out[i][j] = float64(n) / float64(total)
		}
	}
	return out
}

// UnknownSymbols returns the distinct out-of-alphabet characters seen in
// any column, sorted.
func (h *Histogram) UnknownSymbols() []string {
	seen := make(map[byte]bool)
	for _, m := range h.Unknown {
		for c := range m {
			seen[c] = true
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

// UnknownColumns returns the number of columns containing out-of-alphabet
// characters.
func (h *Histogram) UnknownColumns() int {
	n := 0
	for _, m := range h.Unknown {
		if m != nil {
			n++
		}
	}
	return n
}

// WriteCSV writes the header and one row per column, as counts or, when
// normalise is set, as proportions.
func (h *Histogram) WriteCSV(w io.Writer, normalise bool) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header()); err != nil {
		return err
	}

	var props [][]float64
	if normalise {
		props = h.Proportions()
	}

	cells := make([]string, len(Alphabet))
	for i, row := range h.Counts {
		for j, n := range row {
			if normalise {
				cells[j] = numfmt.Float(props[i][j])
			} else {
				cells[j] = strconv.Itoa(n)
			}
		}
		if _, err := fmt.Fprintln(bw, strings.Join(cells, ",")); err != nil {
			return err
		}
	}

	return bw.Flush()
}
