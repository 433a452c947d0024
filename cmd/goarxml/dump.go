package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/goarxml/goarxml"
	"github.com/goarxml/goarxml/cmd/internal/cliutil"
	"github.com/goarxml/goarxml/constant"
)

// DumpOptions controls what gets included in dump output.
type DumpOptions struct {
	Format       string
	Indent       bool
	IncludeDiags bool
	Patterns     []string
}

func (c *cli) dumpCmd() *cobra.Command {
	var (
		opts       DumpOptions
		compact    bool
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "dump [REF...]",
		Short: "Output constants as JSON or YAML",
		Long: `Output constants as JSON or YAML.

REF arguments select constants by reference path and may use globs,
e.g. /Constants/** for everything below the Constants package. Without
arguments every constant is dumped.`,
		Example: `  goarxml dump -p ./arxml
  goarxml dump -p ./arxml /Constants/Engine/IdleSpeed
  goarxml dump -p ./arxml --format yaml '/Constants/**'
  goarxml dump -p ./arxml --compact | jq '.constants[].ref'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "json" && opts.Format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", opts.Format)
			}
			for _, p := range args {
				if !doublestar.ValidatePattern(p) {
					return fmt.Errorf("invalid reference pattern %q", p)
				}
			}
			opts.Patterns = args

			ws, err := c.mustLoad(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputFile != "" {
				f, closeOut, err := cliutil.GetOutput(outputFile)
				if err != nil {
					return err
				}
				defer closeOut()
				out = f
			}

			if !cmd.Flags().Changed("indent") {
				opts.Indent = !compact && (outputFile != "" || cliutil.IsTerminal(out))
			}

			output := buildDumpOutput(ws, opts)
			var data []byte
			if opts.Format == "yaml" {
				data, err = marshalYAML(output)
			} else {
				data, err = marshalJSON(output, opts.Indent)
				data = append(data, '\n')
			}
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", opts.Format, err)
			}
			_, err = out.Write(data)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Format, "format", "f", "json", "output format (json or yaml)")
	flags.BoolVar(&opts.Indent, "indent", false, "indent JSON output (default when writing to a terminal)")
	flags.BoolVar(&compact, "compact", false, "minified JSON (no indentation)")
	flags.BoolVar(&opts.IncludeDiags, "diagnostics", false, "include load diagnostics")
	flags.StringVarP(&outputFile, "output", "o", "", "write output to file")
	return cmd
}

// buildDumpOutput creates the output structure.
func buildDumpOutput(ws *goarxml.Workspace, opts DumpOptions) *DumpOutput {
	output := &DumpOutput{Constants: []ConstantJSON{}}
	for _, doc := range ws.Documents {
		for _, pkg := range doc.Packages {
			eachConstant(pkg, func(c *constant.Constant) {
				if matchRef(goarxml.RefPath(c), opts.Patterns) {
					output.Constants = append(output.Constants, buildConstantJSON(c, doc.File))
				}
			})
		}
	}
	if opts.IncludeDiags {
		for _, d := range ws.Diagnostics {
			output.Diagnostics = append(output.Diagnostics, buildDiagnosticJSON(d))
		}
	}
	return output
}

func eachConstant(pkg *goarxml.Package, fn func(*constant.Constant)) {
	for _, c := range pkg.Constants {
		fn(c)
	}
	for _, sub := range pkg.Packages {
		eachConstant(sub, fn)
	}
}

// matchRef reports whether ref matches any pattern. No patterns match everything.
func matchRef(ref string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, ref); ok {
			return true
		}
	}
	return false
}
