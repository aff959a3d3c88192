// Variant get command shows one variant.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var variantGetCmd = &cobra.Command{
	Use:   "get <variant-id>",
	Short: "Show a variant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		variant, err := store.GetVariant(args[0])
		if err != nil {
			return fmt.Errorf("get variant: %w", err)
		}

		if flagJSON {
			return printJSON(variant)
		}

		fmt.Println("ID:      ", variant.VariantID)
		fmt.Println("Name:    ", variant.Name)
		fmt.Println("Sections:", strings.Join(variant.SectionIDs, ", "))
		if len(variant.Rules) > 0 {
			fmt.Println("Rules:")
			for _, key := range []string{"include_tags", "exclude_tags"} {
				if v, ok := variant.Rules[key]; ok {
					fmt.Printf("  %s: %v\n", key, v)
				}
			}
		}
		return nil
	},
}
