package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloprep-go/internal/config"
	"github.com/aria-lang/phyloprep-go/internal/selection"
)

type selectOptions struct {
	input      string
	alignment  string
	outDir     string
	prefix     string
	configFile string
	dbSep      string
	fastaSep   string
	msaOnly    bool
	updateIDs  bool
	idFormat   string

	include   string
	exclude   string
	dateRange string
	country   string
	province  string
	length    string
	fields    []string
}

// selection returns the criteria given on the command line.
func (o *selectOptions) selection() (config.Selection, error) {
	sel := config.Selection{
		Include:   o.include,
		Exclude:   o.exclude,
		DateRange: o.dateRange,
		Length:    o.length,
	}
	if o.country != "" {
		sel.Fields = append(sel.Fields, config.Field{Name: config.KeyCountry, Value: o.country})
	}
	if o.province != "" {
		sel.Fields = append(sel.Fields, config.Field{Name: config.KeyProvince, Value: o.province})
	}
	for _, f := range o.fields {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return config.Selection{}, fmt.Errorf("--field %q: expected name=patterns", f)
		}
		sel.Fields = append(sel.Fields, config.Field{Name: name, Value: value})
	}
	return sel, nil
}

func newSelectCmd(a *app) *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select metadata rows and sequences by criteria",
		Long: `Selects the rows of a metadata table, and the matching sequences of an
alignment, that fulfil every given criterion. This selects, it does not
subsample: all matching sequences are extracted.

Missing values are "NA" and never match. Country, province and --field
criteria are comma-separated lists of wildcard patterns; include and
exclude take exact ids, either as a comma-separated list or as a file with
ids in its first column. Criteria may also come from a YAML or TOML config
file; command line values take precedence.`,
		Example: `  phyloprep select -i meta.csv -a ebov.fas -o out -C Guinea,Sierra* -D 2014/06/01-2015/01/01
  phyloprep select -i meta.csv -a ebov.fas -o out -c criteria.yml -u -L 15000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "inputfile", "i", "", "input metadata table (required)")
	f.StringVarP(&opts.alignment, "alignfile", "a", "", "input alignment")
	f.StringVarP(&opts.outDir, "outputpath", "o", "", "directory for the output files (required)")
	f.StringVarP(&opts.prefix, "prefix", "p", "", "prefix for the output files (default: input table name)")
	f.StringVarP(&opts.configFile, "configfile", "c", "", "config file with selection criteria")
	f.StringVarP(&opts.dbSep, "dbsep", "d", ",", "column separator of the metadata table")
	f.StringVarP(&opts.fastaSep, "fastasep", "f", "|", "field separator in sequence ids")
	f.BoolVarP(&opts.msaOnly, "msaonly", "m", false, "write only the output alignment")
	f.BoolVarP(&opts.updateIDs, "updateids", "u", false, "rewrite sequence ids from the metadata")
	f.StringVarP(&opts.idFormat, "seqidformat", "s", selection.DefaultIDFormat, "format of rewritten sequence ids")

	f.StringVarP(&opts.include, "include", "I", "", "ids to select (list or file)")
	f.StringVarP(&opts.exclude, "exclude", "E", "", "ids to exclude (list or file)")
	f.StringVarP(&opts.dateRange, "daterange", "D", "", "dates in [lower, upper), decimal or yyyy/mm/dd (e.g. 2014.5-2015.5)")
	f.StringVarP(&opts.country, "country", "C", "", "countries to select")
	f.StringVarP(&opts.province, "province", "P", "", "provinces to select")
	f.StringVarP(&opts.length, "length", "L", "", "minimum ungapped sequence length")
	f.StringArrayVar(&opts.fields, "field", nil, "other metadata field as name=patterns (repeatable)")

	_ = cmd.MarkFlagRequired("inputfile")
	_ = cmd.MarkFlagRequired("outputpath")

	return cmd
}

func runSelect(cmd *cobra.Command, a *app, opts *selectOptions) error {
	log := a.log()

	sel, err := opts.selection()
	if err != nil {
		return err
	}
	if opts.configFile != "" {
		values, err := config.Load(opts.configFile)
		if err != nil {
			return err
		}
		sel = config.SelectionFrom(values).Merge(sel)
		log.Debug("loaded selection config", zap.String("path", opts.configFile))
	}

	crit, err := selection.Build(sel, opts.dbSep)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	heading(out, "SELECTION CRITERIA")
	for _, line := range crit.Describe() {
		fmt.Fprintln(out, line)
	}

	res, err := selection.Run(cmd.Context(), selection.Job{
		Table:     opts.input,
		Alignment: opts.alignment,
		OutDir:    opts.outDir,
		Prefix:    opts.prefix,
		Sep:       opts.dbSep,
		FastaSep:  opts.fastaSep,
		MSAOnly:   opts.msaOnly,
		UpdateIDs: opts.updateIDs,
		IDFormat:  opts.idFormat,
		Criteria:  crit,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	heading(out, "RESULTS SUMMARY")
	countLine(out, res.Evaluated, "sequence", "evaluated")
	countLine(out, res.Matched, "matching sequence", "found")
	countLine(out, res.Skipped, "sequence", "skipped")
	countLine(out, res.Extracted, "matching sequence", "extracted from alignment")
	for _, rc := range res.ReasonCounts() {
		countLine(out, rc.Count, "row", "failed "+rc.Reason)
	}
	if res.MissingFromAlignment > 0 {
		warnLine(out, "%10d selected %s not found in the alignment",
			res.MissingFromAlignment, plural(res.MissingFromAlignment, "sequence"))
	}
	fmt.Fprintln(out)
	return nil
}
