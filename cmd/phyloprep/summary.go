package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gedex/inflector"
)

var (
	headingColor = color.New(color.Bold)
	countColor   = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return inflector.Pluralize(noun)
}

func heading(w io.Writer, title string) {
	headingColor.Fprintf(w, "\n%s\n", title)
}

// countLine prints a right-aligned count followed by the noun, pluralised
// to agree with n, and the rest of the sentence.
func countLine(w io.Writer, n int, noun, rest string) {
	countColor.Fprintf(w, "%10d", n)
	fmt.Fprintf(w, " %s %s\n", plural(n, noun), rest)
}

func warnLine(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format+"\n", args...)
}
