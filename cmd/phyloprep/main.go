// Command phyloprep prepares sequence data and run files for phylogenetic
// inference.
//
// Usage:
//
//	phyloprep [command] [options]
//
// Commands:
//
//	datefrac    Convert calendar dates to decimal years
//	select      Select metadata rows and sequences by criteria
//	msahist     Count characters per alignment column
//	makexml     Generate inference XML files from run configs
//	tipdates    Tabulate tip dates and their bounds
//	version     Show version information
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
