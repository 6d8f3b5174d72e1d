// Package msa reads and writes multiple sequence alignments in FASTA format.
//
// Records keep their sequence text exactly as read (case, gaps and
// ambiguity codes included). FASTA parsing and writing go through biogo.
package msa

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/aria-lang/phyloprep-go/internal/fileio"
)

// LineWidth is the number of residues per line when writing FASTA.
const LineWidth = 60

// DefaultSep separates fields in structured sequence ids such as
// "EBOV|KR001|SLE|Kailahun|2014-05-26".
const DefaultSep = "|"

// Record is a single aligned sequence.
type Record struct {
	ID   string
	Desc string
	Seq  string
}

// Len returns the aligned length, gaps included.
func (r *Record) Len() int {
	return len(r.Seq)
}

// Ungapped returns the sequence length without gaps ('-') and unknown
// bases ('N').
func (r *Record) Ungapped() int {
	n := 0
	for i := 0; i < len(r.Seq); i++ {
		if c := r.Seq[i]; c != '-' && c != 'N' {
			n++
		}
	}
	return n
}

// CountAmbiguous counts 'N' and 'n' bases.
func (r *Record) CountAmbiguous() int {
	return strings.Count(r.Seq, "N") + strings.Count(r.Seq, "n")
}

// Field returns the i-th sep-separated field of the id, or "" if absent.
// Negative indices count from the end.
func (r *Record) Field(sep string, i int) string {
	parts := strings.Split(r.ID, sep)
	if i < 0 {
		i += len(parts)
	}
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// Key extracts the lookup key from a structured id: the text between the
// first and second sep. An id with a single sep keys to everything after
// it and an id without sep keys to itself.
func Key(id, sep string) string {
	if sep == "" {
		return id
	}
	i := strings.Index(id, sep)
	if i < 0 {
		return id
	}
	rest := id[i+len(sep):]
	if j := strings.Index(rest, sep); j >= 0 {
		return rest[:j]
	}
	return rest
}

// Alignment is an ordered set of records.
type Alignment struct {
	Records []*Record
	index   map[string]*Record
	sep     string
}

// New wraps records in an Alignment.
func New(records []*Record) *Alignment {
	return &Alignment{Records: records}
}

// Read parses FASTA records from r.
func Read(r io.Reader) (*Alignment, error) {
	reader := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))

	records := make([]*Record, 0)
	for {
		s, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", len(records)+1, err)
		}
		ls := s.(*linear.Seq)
		records = append(records, &Record{
			ID:   ls.Name(),
			Desc: ls.Description(),
			Seq:  string(alphabet.LettersToBytes(ls.Seq)),
		})
	}

	return New(records), nil
}

// ReadFile reads an alignment from a file (gzip aware, "-" for stdin).
func ReadFile(path string) (*Alignment, error) {
	f, err := fileio.OpenIn(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	aln, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return aln, nil
}

// Len returns the number of records.
func (a *Alignment) Len() int {
	return len(a.Records)
}

// Index builds the key lookup table using sep (see Key). Later records
// replace earlier ones with the same key.
func (a *Alignment) Index(sep string) {
	a.sep = sep
	a.index = make(map[string]*Record, len(a.Records))
	for _, r := range a.Records {
		a.index[Key(r.ID, sep)] = r
	}
}

// Lookup returns the record for key. Index must have been called.
func (a *Alignment) Lookup(key string) (*Record, bool) {
	if a.index == nil {
		a.Index(DefaultSep)
	}
	r, ok := a.index[key]
	return r, ok
}

// Width returns the alignment length, checking that all records agree.
func (a *Alignment) Width() (int, error) {
	if len(a.Records) == 0 {
		return 0, &EmptyAlignmentError{}
	}
	width := a.Records[0].Len()
	for _, r := range a.Records[1:] {
		if r.Len() != width {
			return 0, &RaggedError{ID: r.ID, Expected: width, Actual: r.Len()}
		}
	}
	return width, nil
}

// Column returns the upper-cased characters at position i of every record.
func (a *Alignment) Column(i int) []byte {
	col := make([]byte, len(a.Records))
	for j, r := range a.Records {
		c := r.Seq[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		col[j] = c
	}
	return col
}

// Write writes records to w in FASTA format.
func Write(w io.Writer, records []*Record) error {
	fw := fasta.NewWriter(w, LineWidth)
	for _, r := range records {
		s := linear.NewSeq(r.ID, alphabet.BytesToLetters([]byte(r.Seq)), alphabet.DNA)
		s.Desc = r.Desc
		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("writing %s: %w", r.ID, err)
		}
	}
	return nil
}

// WriteFile writes records to a FASTA file.
func WriteFile(path string, records []*Record) error {
	f, err := fileio.OpenOut(path)
	if err != nil {
		return err
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
