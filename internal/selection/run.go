package selection

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/aria-lang/phyloprep-go/internal/fileio"
	"github.com/aria-lang/phyloprep-go/internal/metadata"
	"github.com/aria-lang/phyloprep-go/internal/msa"
	"github.com/aria-lang/phyloprep-go/internal/placeholder"
)

// DefaultIDFormat is the id template used when rewriting sequence ids.
const DefaultIDFormat = "EBOV|{id}|{accession}|{country}|{province}|{date}"

// Job describes one selection run.
type Job struct {
	Table     string // metadata table path
	Alignment string // optional alignment path
	OutDir    string
	Prefix    string // defaults to the table's stem
	Sep       string // table column separator
	FastaSep  string // field separator in sequence ids
	MSAOnly   bool   // write only the alignment
	UpdateIDs bool
	IDFormat  string
	Mapping   metadata.FieldMapping
	Criteria  *Criteria
	Logger    *zap.Logger
}

// Result summarises a selection run.
type Result struct {
	Evaluated            int
	Matched              int
	Skipped              int
	Extracted            int
	MissingFromAlignment int
	Reasons              map[string]int
	Files                []string
}

// ReasonCounts returns the rejection reasons sorted by name.
func (r *Result) ReasonCounts() []ReasonCount {
	out := make([]ReasonCount, 0, len(r.Reasons))
	for k, v := range r.Reasons {
		out = append(out, ReasonCount{Reason: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reason < out[j].Reason })
	return out
}

// ReasonCount is the number of rows rejected for one reason.
type ReasonCount struct {
	Reason string
	Count  int
}

func (r *Result) String() string {
	return fmt.Sprintf("Result { evaluated: %d, matched: %d, skipped: %d, extracted: %d }",
		r.Evaluated, r.Matched, r.Skipped, r.Extracted)
}

type outputs struct {
	selected *metadata.Writer
	skipped  *metadata.Writer
	closers  []io.Closer
}

func (o *outputs) close() error {
	var first error
	for _, w := range []*metadata.Writer{o.selected, o.skipped} {
		if w == nil {
			continue
		}
		if err := w.Flush(); err != nil && first == nil {
			first = err
		}
	}
	for _, c := range o.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (o *outputs) open(path, sep string) (*metadata.Writer, error) {
	f, err := fileio.OpenOut(path)
	if err != nil {
		return nil, err
	}
	o.closers = append(o.closers, f)
	return metadata.NewWriter(f, sep), nil
}

// Run reads the table and optional alignment, writes the selected and
// skipped rows and the selected sequences, and returns the counts.
func Run(ctx context.Context, job Job) (*Result, error) {
	log := job.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if job.Sep == "" {
		job.Sep = ","
	}
	if job.FastaSep == "" {
		job.FastaSep = msa.DefaultSep
	}
	if job.IDFormat == "" {
		job.IDFormat = DefaultIDFormat
	}
	if job.Prefix == "" {
		job.Prefix = fileio.Stem(job.Table)
	}
	crit := job.Criteria
	if crit == nil {
		crit = &Criteria{}
	}

	var aln *msa.Alignment
	if job.Alignment != "" {
		var err error
		if aln, err = msa.ReadFile(job.Alignment); err != nil {
			return nil, err
		}
		aln.Index(job.FastaSep)
		log.Debug("read alignment", zap.String("path", job.Alignment), zap.Int("records", aln.Len()))
	}

	in, err := fileio.OpenIn(job.Table)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	reader, err := metadata.NewReader(in, job.Sep, job.Mapping)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", job.Table, err)
	}
	table := reader.Table()

	if err := crit.Check(table, aln); err != nil {
		return nil, err
	}

	if err := fileio.EnsureDir(job.OutDir); err != nil {
		return nil, err
	}
	base := filepath.Join(job.OutDir, job.Prefix)

	res := &Result{Reasons: make(map[string]int)}
	out := &outputs{}
	defer out.close()

	if !job.MSAOnly {
		if out.selected, err = out.open(base+".csv", job.Sep); err != nil {
			return nil, err
		}
		if out.skipped, err = out.open(base+".skipped.csv", job.Sep); err != nil {
			return nil, err
		}
		for _, w := range []*metadata.Writer{out.selected, out.skipped} {
			if err := w.WriteCells(table.Header); err != nil {
				return nil, err
			}
		}
		res.Files = append(res.Files, base+".csv", base+".skipped.csv")
	}

	sequences := make([]*msa.Record, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", job.Table, err)
		}
		res.Evaluated++

		d := crit.Evaluate(row, aln)
		if !d.Selected {
			res.Skipped++
			for _, r := range d.Reasons {
				res.Reasons[r]++
			}
			log.Debug("skipped", zap.String("id", row.ID()), zap.Strings("reasons", d.Reasons))
			if out.skipped != nil {
				if err := out.skipped.WriteRow(row); err != nil {
					return nil, err
				}
			}
			continue
		}

		res.Matched++
		if out.selected != nil {
			if err := out.selected.WriteRow(row); err != nil {
				return nil, err
			}
		}

		if aln == nil {
			continue
		}
		rec, ok := aln.Lookup(row.ID())
		if !ok {
			res.MissingFromAlignment++
			log.Warn("selected sequence not in alignment", zap.String("id", row.ID()), zap.Int("line", row.Line))
			continue
		}

		sel := *rec
		if job.UpdateIDs {
			id, err := placeholder.Expand(job.IDFormat, placeholder.MapLookup(row.Values()))
			if err != nil {
				return nil, fmt.Errorf("line %d: rewriting id: %w", row.Line, err)
			}
			sel.ID = id
			sel.Desc = ""
		}
		sequences = append(sequences, &sel)
	}

	if err := out.close(); err != nil {
		return nil, err
	}
	out.closers = nil
	out.selected, out.skipped = nil, nil

	if len(sequences) > 0 {
		if err := msa.WriteFile(base+".fas", sequences); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, base+".fas")
	}
	res.Extracted = len(sequences)

	log.Info("selection done",
		zap.Int("evaluated", res.Evaluated),
		zap.Int("matched", res.Matched),
		zap.Int("skipped", res.Skipped),
		zap.Int("extracted", res.Extracted))

	return res, nil
}
