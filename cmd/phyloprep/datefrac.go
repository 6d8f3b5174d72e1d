package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloprep-go/internal/dates"
	"github.com/aria-lang/phyloprep-go/internal/fileio"
)

type dateFracOptions struct {
	file     string
	sep      string
	calendar bool
	digits   int
}

func newDateFracCmd(a *app) *cobra.Command {
	opts := &dateFracOptions{}

	cmd := &cobra.Command{
		Use:   "datefrac [year [month [day]]]",
		Short: "Convert calendar dates to decimal years",
		Long: `Converts a possibly partial calendar date to a decimal year, or
normalises it as a calendar string with --calendar. Missing components
("NA" or empty) give the midpoint of the known period.

With --file, every line holds year, month and day separated by --sep and
one result is printed per line.`,
		Example: `  phyloprep datefrac 2015 1 15
  phyloprep datefrac --digits 3 2016 02
  phyloprep datefrac --file dates.csv --calendar`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.file == "" && len(args) == 0 {
				return fmt.Errorf("a year or --file is required")
			}
			if opts.file != "" {
				return runDateFracFile(cmd, opts)
			}

			parts := make([]string, 3)
			copy(parts, args)
			s, err := dates.DateString(parts[0], parts[1], parts[2], opts.calendar, opts.digits)
			if err != nil {
				return err
			}
			a.log().Debug("converted date", zap.Strings("input", args), zap.String("output", s))
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "file with year, month and day columns")
	cmd.Flags().StringVar(&opts.sep, "sep", ",", "column separator for --file")
	cmd.Flags().BoolVarP(&opts.calendar, "calendar", "c", false, "print calendar dates instead of decimal years")
	cmd.Flags().IntVarP(&opts.digits, "digits", "d", -1, "decimal places (-1 for the default of 6)")

	return cmd
}

func runDateFracFile(cmd *cobra.Command, opts *dateFracOptions) error {
	in, err := fileio.OpenIn(opts.file)
	if err != nil {
		return err
	}
	defer in.Close()

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		parts := make([]string, 3)
		copy(parts, strings.Split(text, opts.sep))
		s, err := dates.DateString(parts[0], parts[1], parts[2], opts.calendar, opts.digits)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		fmt.Fprintln(out, s)
	}
	return scanner.Err()
}
