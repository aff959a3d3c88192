// Entry categories command lists the schema registry.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/internal/schema"
	"github.com/seewee/seewee/pkg/types"
)

var entryCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List entry categories and their fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			out := make(map[string][]schema.FieldSpec, len(types.Categories()))
			for _, c := range types.Categories() {
				specs, err := schema.Describe(c)
				if err != nil {
					return err
				}
				out[string(c)] = specs
			}
			return printJSON(out)
		}

		var sb strings.Builder
		w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tFIELDS")
		fmt.Fprintln(w, "--------\t------")
		for _, c := range types.Categories() {
			specs, err := schema.Describe(c)
			if err != nil {
				return err
			}
			names := make([]string, len(specs))
			for i, s := range specs {
				names[i] = s.Name
				if s.Required {
					names[i] += "*"
				}
			}
			fmt.Fprintf(w, "%s\t%s\n", c, strings.Join(names, ", "))
		}
		w.Flush()
		for _, line := range strings.Split(sb.String(), "\n") {
			fmt.Println(strings.TrimRight(line, " "))
		}
		return nil
	},
}
