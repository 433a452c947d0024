package main

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/spf13/cobra"

	"github.com/goarxml/goarxml"
	"github.com/goarxml/goarxml/constant"
)

func (c *cli) loadCmd() *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load documents and report diagnostics",
		Example: `  goarxml load -p ./arxml
  goarxml load -p 'vendor/**/*.arxml' --schema 3.2.3
  goarxml load -vv -p ./arxml          # Trace logging
  goarxml load --stats -p ./arxml      # Show detailed stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, loadErr := c.loadWorkspace(cmd.Context())
			if ws == nil {
				return loadErr
			}
			out := cmd.OutOrStdout()

			if stats {
				printDetailedStats(out, ws)
			} else {
				fmt.Fprintf(out, "Loaded %d documents (%d packages, %d constants)\n",
					len(ws.Documents), count(ws.Packages()), count(ws.Constants()))
			}

			if len(ws.Diagnostics) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Diagnostics:")
				for _, d := range ws.Diagnostics {
					printDiagnostic(out, d)
				}
			}

			if loadErr != nil {
				if errors.Is(loadErr, goarxml.ErrDiagnosticsFailed) {
					fmt.Fprintln(cmd.ErrOrStderr(), loadErr)
					return &exitCodeError{code: exitDiags, err: loadErr}
				}
				return loadErr
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "show detailed statistics")
	return cmd
}

func printDiagnostic(w io.Writer, d goarxml.Diagnostic) {
	prefix := "  " + d.Severity.String() + ": "
	if d.Code != "" {
		prefix += "[" + d.Code + "] "
	}
	loc := d.File
	if loc != "" && d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, d.Line)
	}
	switch {
	case loc != "" && d.Path != "":
		fmt.Fprintf(w, "%s%s: %s: %s\n", prefix, loc, d.Path, d.Message)
	case loc != "":
		fmt.Fprintf(w, "%s%s: %s\n", prefix, loc, d.Message)
	default:
		fmt.Fprintf(w, "%s%s\n", prefix, d.Message)
	}
}

func printDetailedStats(w io.Writer, ws *goarxml.Workspace) {
	fmt.Fprintln(w, "Statistics:")
	fmt.Fprintf(w, "  Documents:      %d\n", len(ws.Documents))
	fmt.Fprintf(w, "  Packages:       %d\n", count(ws.Packages()))
	fmt.Fprintf(w, "  Constants:      %d\n", count(ws.Constants()))
	fmt.Fprintf(w, "  Diagnostics:    %d\n", len(ws.Diagnostics))

	kindCounts := make(map[constant.Kind]int)
	for c := range ws.Constants() {
		constant.Walk(c.Value, func(v constant.Value, _ int) bool {
			kindCounts[v.Kind()]++
			return true
		})
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Values by kind:")
	for kind := constant.KindInteger; kind <= constant.KindApplication; kind++ {
		if n := kindCounts[kind]; n > 0 {
			fmt.Fprintf(w, "  %-20s %d\n", kind.String()+":", n)
		}
	}
}

func count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}
