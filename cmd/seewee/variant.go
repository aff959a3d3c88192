// Variant command group for the seewee CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/pkg/types"
)

var variantCmd = &cobra.Command{
	Use:   "variant",
	Short: "Manage CV variants",
	Long: `Variant manages named views over the entry pool. Each variant has a
section order, an optional tag-rule filter, and its own layout of
placed entries.`,
}

func init() {
	variantCmd.AddCommand(variantCreateCmd)
	variantCmd.AddCommand(variantGetCmd)
	variantCmd.AddCommand(variantListCmd)
	variantCmd.AddCommand(variantRenameCmd)
	variantCmd.AddCommand(variantRulesCmd)
	variantCmd.AddCommand(variantDeleteCmd)
}

// printVariantTable prints variants in a human-readable table format.
func printVariantTable(variants []*types.Variant) {
	if len(variants) == 0 {
		fmt.Println("No variants found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tSECTIONS")
	fmt.Fprintln(w, "--\t----\t--------")
	for _, v := range variants {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			shortID(v.VariantID),
			v.Name,
			strings.Join(v.SectionIDs, ","),
		)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d variant(s)\n", len(variants))
}
