package hist

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aria-lang/phyloprep-go/internal/fileio"
	"github.com/aria-lang/phyloprep-go/internal/msa"
)

// Job describes a histogram run over one or more alignments.
type Job struct {
	Inputs    []string
	OutDir    string
	Normalise bool
	// Workers bounds the number of alignments processed at once; 0 means
	// GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
}

// Output describes the histogram written for one input.
type Output struct {
	Input          string
	Path           string
	Records        int
	Columns        int
	UnknownColumns int
	UnknownSymbols []string
}

// OutputPath returns where the histogram of input is written.
func OutputPath(outDir, input string) string {
	return filepath.Join(outDir, fileio.Stem(input)+".hist.csv")
}

// Run processes every input concurrently. Outputs are returned in input
// order; the first failure cancels the remaining work.
func Run(ctx context.Context, job Job) ([]Output, error) {
	log := job.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if len(job.Inputs) == 0 {
		return nil, fmt.Errorf("no input alignments")
	}
	if err := fileio.EnsureDir(job.OutDir); err != nil {
		return nil, err
	}

	workers := job.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outputs := make([]Output, len(job.Inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range job.Inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := processFile(input, job.OutDir, job.Normalise)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			for _, c := range out.UnknownSymbols {
				log.Warn("character not in alphabet", zap.String("input", input), zap.String("char", c))
			}
			log.Debug("histogram written", zap.String("path", out.Path), zap.Int("columns", out.Columns))
			outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func processFile(input, outDir string, normalise bool) (Output, error) {
	aln, err := msa.ReadFile(input)
	if err != nil {
		return Output{}, err
	}

	h, err := Count(aln)
	if err != nil {
		return Output{}, err
	}

	path := OutputPath(outDir, input)
	f, err := fileio.OpenOut(path)
	if err != nil {
		return Output{}, err
	}
	if err := h.WriteCSV(f, normalise); err != nil {
		f.Close()
		return Output{}, err
	}
	if err := f.Close(); err != nil {
		return Output{}, err
	}

	return Output{
		Input:          input,
		Path:           path,
		Records:        aln.Len(),
		Columns:        h.Width(),
		UnknownColumns: h.UnknownColumns(),
		UnknownSymbols: h.UnknownSymbols(),
	}, nil
}
