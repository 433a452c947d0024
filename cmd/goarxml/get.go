package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goarxml/goarxml"
	"github.com/goarxml/goarxml/constant"
)

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get REF",
		Short:   "Print one constant's value tree",
		Example: `  goarxml get -p ./arxml /Constants/Engine/IdleSpeed`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.mustLoad(cmd)
			if err != nil {
				return err
			}
			cst := ws.Lookup(args[0])
			if cst == nil {
				return fmt.Errorf("constant not found: %s", args[0])
			}
			printConstant(cmd.OutOrStdout(), ws, cst)
			return nil
		},
	}
}

func printConstant(w io.Writer, ws *goarxml.Workspace, c *constant.Constant) {
	fmt.Fprintln(w, goarxml.RefPath(c))
	if c.TypeRef != "" {
		fmt.Fprintf(w, "  type:      %s\n", c.TypeRef)
	}
	if c.LongName != nil {
		fmt.Fprintf(w, "  long name: %s\n", c.LongName.Text)
	}
	if c.Desc != nil {
		fmt.Fprintf(w, "  desc:      %s\n", c.Desc.Text)
	}
	if c.AdminData != nil {
		for _, sdg := range c.AdminData.SpecialDataGroups {
			fmt.Fprintf(w, "  sdg:       %s (%d entries)\n", sdg.GID, len(sdg.SpecialData))
		}
	}
	fmt.Fprintln(w, "  value:")
	constant.Walk(c.Value, func(v constant.Value, depth int) bool {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth+2), formatValue(ws, v))
		return true
	})
}

// formatValue renders one outline line: label, kind and the scalar part.
func formatValue(ws *goarxml.Workspace, v constant.Value) string {
	label := v.Label()
	if label == "" {
		label = "-"
	}
	line := fmt.Sprintf("%s (%s)", label, v.Kind())

	switch v := v.(type) {
	case *constant.IntegerValue:
		return fmt.Sprintf("%s = %s", line, v.Text)
	case *constant.StringValue:
		return fmt.Sprintf("%s = %q", line, v.Value)
	case *constant.BooleanValue:
		return fmt.Sprintf("%s = %s", line, v.Text)
	case *constant.TextValue:
		return fmt.Sprintf("%s = %q", line, v.Value)
	case *constant.NumericalValue:
		return fmt.Sprintf("%s = %s", line, v.Value)
	case *constant.ConstantReference:
		if ws.Resolve(v) == nil {
			return fmt.Sprintf("%s -> %s (unresolved)", line, v.Ref)
		}
		return fmt.Sprintf("%s -> %s", line, v.Ref)
	case *constant.ApplicationValue:
		var parts []string
		if v.Category != "" {
			parts = append(parts, "category="+v.Category)
		}
		if vc := v.SwValueCont; vc != nil {
			parts = append(parts, "values=["+joinSamples(vc.Values)+"]")
			if vc.UnitRef != "" {
				parts = append(parts, "unit="+vc.UnitRef)
			}
		}
		if ac := v.SwAxisCont; ac != nil {
			parts = append(parts, "axis=["+joinSamples(ac.Values)+"]")
		}
		if len(parts) == 0 {
			return line
		}
		return line + " " + strings.Join(parts, " ")
	default:
		return line
	}
}

func joinSamples(ss []constant.Sample) string {
	strs := make([]string, len(ss))
	for i, s := range ss {
		strs[i] = s.String()
	}
	return strings.Join(strs, ", ")
}
