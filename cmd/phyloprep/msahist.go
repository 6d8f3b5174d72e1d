package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aria-lang/phyloprep-go/internal/hist"
)

type msaHistOptions struct {
	inputs    string
	outDir    string
	normalise bool
	workers   int
}

func newMSAHistCmd(a *app) *cobra.Command {
	opts := &msaHistOptions{}

	cmd := &cobra.Command{
		Use:   "msahist [alignment...]",
		Short: "Count characters per alignment column",
		Long: `Counts how often every IUPAC nucleotide code, gap and '?' occurs in each
column of an alignment. One <name>.hist.csv is written per input, with a
row per column; --normalise writes proportions instead of counts.

Inputs are given with -i as a comma-separated list, as arguments, or both.
Several inputs are processed in parallel.`,
		Example: `  phyloprep msahist -i cds.fas,ig.fas -o hist
  phyloprep msahist -o hist -n runs/*.fas`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMSAHist(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.inputs, "inputfile", "i", "", "comma-separated input alignments")
	cmd.Flags().StringVarP(&opts.outDir, "outputpath", "o", "", "directory for the histograms (required)")
	cmd.Flags().BoolVarP(&opts.normalise, "normalise", "n", false, "write proportions instead of counts")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "alignments processed at once (0 for one per CPU)")
	_ = cmd.MarkFlagRequired("outputpath")

	return cmd
}

func runMSAHist(cmd *cobra.Command, a *app, opts *msaHistOptions, args []string) error {
	var inputs []string
	for _, s := range strings.Split(opts.inputs, ",") {
		if s = strings.TrimSpace(s); s != "" {
			inputs = append(inputs, s)
		}
	}
	inputs = append(inputs, args...)
	if len(inputs) == 0 {
		return fmt.Errorf("no input alignments given")
	}

	outputs, err := hist.Run(cmd.Context(), hist.Job{
		Inputs:    inputs,
		OutDir:    opts.outDir,
		Normalise: opts.normalise,
		Workers:   opts.workers,
		Logger:    a.log(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, o := range outputs {
		heading(out, o.Input)
		countLine(out, o.Records, "sequence", "read")
		countLine(out, o.Columns, "column", "written to "+o.Path)
		if o.UnknownColumns > 0 {
			warnLine(out, "%10d %s with unknown characters: %s",
				o.UnknownColumns, plural(o.UnknownColumns, "column"), strings.Join(o.UnknownSymbols, " "))
		}
	}
	fmt.Fprintln(out)
	return nil
}
