package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-lang/phyloprep-go/internal/beast"
)

type makeXMLOptions struct {
	inputPath string
	pattern   string
	template  string
	outDir    string
	name      string
	seeds     []int
	threads   int
	queue     int
	dates     bool
}

func newMakeXMLCmd(a *app) *cobra.Command {
	opts := &makeXMLOptions{}
	defaults := beast.DefaultScriptOptions()

	cmd := &cobra.Command{
		Use:   "makexml",
		Short: "Generate inference XML files from run configs",
		Long: `Fills an XML template with the values of every run config matching the
pattern. Placeholders are written {$key}. Alignments, date traits and tip
date estimation blocks are derived from the config's alignment files.

The launch commands of every run are appended to <name>.sh (local, nohup)
and <name>.euler.sh (cluster, bsub), one line per seed.`,
		Example: `  phyloprep makexml -i runs -x template.xml -o xml -s 127,128,129
  phyloprep makexml -c 'runs/*.cfg' --dates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputs, err := beast.Run(cmd.Context(), beast.Job{
				InputDir: opts.inputPath,
				Pattern:  opts.pattern,
				Template: opts.template,
				OutDir:   opts.outDir,
				Name:     opts.name,
				Scripts: beast.ScriptOptions{
					Seeds:   opts.seeds,
					Threads: opts.threads,
					Queue:   opts.queue,
				},
				WriteDates: opts.dates,
				Logger:     a.log(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			heading(out, "GENERATED")
			for _, o := range outputs {
				fmt.Fprintf(out, "%s...\n", o.XML)
				countLine(out, o.Tips, "tip", "dated")
				if o.Uncertain > 0 {
					countLine(out, o.Uncertain, "tip date", "estimated")
				}
			}
			countLine(out, len(outputs), "config", "processed")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.inputPath, "inputpath", "i", "", "directory with run configs")
	f.StringVarP(&opts.pattern, "configpattern", "c", beast.DefaultPattern, "pattern of config file names")
	f.StringVarP(&opts.template, "xmltemplate", "x", "", "XML template (overrides the configs)")
	f.StringVarP(&opts.outDir, "outputpath", "o", "", "output directory (overrides the configs)")
	f.StringVarP(&opts.name, "name", "n", "", "basename of the launch scripts (overrides the configs)")
	f.IntSliceVarP(&opts.seeds, "seeds", "s", defaults.Seeds, "comma-separated random seeds")
	f.IntVarP(&opts.threads, "threads", "t", defaults.Threads, "threads per run")
	f.IntVarP(&opts.queue, "queue", "q", defaults.Queue, "cluster wall clock limit in hours")
	f.BoolVar(&opts.dates, "dates", false, "also write <name>.dates.tsv with tip date bounds")

	return cmd
}
