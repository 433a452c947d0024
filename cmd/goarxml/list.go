package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/goarxml/goarxml"
)

func (c *cli) listCmd() *cobra.Command {
	var (
		countOnly bool
		jsonOut   bool
		depOrder  bool
	)

	cmd := &cobra.Command{
		Use:   "list [REF...]",
		Short: "List constant reference paths and value kinds",
		Example: `  goarxml list -p ./arxml
  goarxml list -p ./arxml --count
  goarxml list -p ./arxml --dependency-order
  goarxml list -p ./arxml '/Constants/Engine/*'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.mustLoad(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			type entry struct {
				Ref  string `json:"ref"`
				Kind string `json:"kind"`
			}
			constants := slices.Collect(ws.Constants())
			if depOrder {
				order, cycles := ws.DependencyOrder()
				for _, cycle := range cycles {
					order = append(order, cycle...)
				}
				constants = order
			}

			entries := []entry{}
			for _, cst := range constants {
				ref := goarxml.RefPath(cst)
				if matchRef(ref, args) {
					entries = append(entries, entry{Ref: ref, Kind: cst.Value.Kind().String()})
				}
			}

			if countOnly {
				fmt.Fprintln(out, len(entries))
				return nil
			}

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(entries); err != nil {
					return fmt.Errorf("encoding JSON: %w", err)
				}
				return nil
			}

			for _, e := range entries {
				fmt.Fprintf(out, "%s\t%s\n", e.Ref, e.Kind)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&countOnly, "count", false, "print only the constant count")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON array")
	cmd.Flags().BoolVar(&depOrder, "dependency-order", false, "list referenced constants before the constants using them")
	return cmd
}
