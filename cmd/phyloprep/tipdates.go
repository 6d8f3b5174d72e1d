package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloprep-go/internal/beast"
	"github.com/aria-lang/phyloprep-go/internal/fileio"
	"github.com/aria-lang/phyloprep-go/internal/msa"
)

func newTipDatesCmd(a *app) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "tipdates",
		Short: "Tabulate tip dates and their bounds",
		Long: `Reads the sampling date from the last '|' field of every sequence id and
writes a tab-separated table of id, date, lower and upper bound. Partial
dates are placed mid-period with bounds covering the period.`,
		Example: `  phyloprep tipdates -i ebov.fas
  phyloprep tipdates -i ebov.fas.gz -o ebov.dates.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			aln, err := msa.ReadFile(input)
			if err != nil {
				return err
			}
			tips, err := beast.Tips(aln)
			if err != nil {
				return err
			}
			a.log().Debug("read tips", zap.Int("tips", len(tips)), zap.Int("uncertain", len(beast.Uncertain(tips))))

			if fileio.IsStdio(output) {
				return beast.WriteDatesTable(cmd.OutOrStdout(), tips)
			}
			f, err := fileio.OpenOut(output)
			if err != nil {
				return err
			}
			if err := beast.WriteDatesTable(f, tips); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&input, "inputfile", "i", "", "input alignment (required)")
	cmd.Flags().StringVarP(&output, "outputfile", "o", "-", "output table, - for stdout")
	_ = cmd.MarkFlagRequired("inputfile")

	return cmd
}
