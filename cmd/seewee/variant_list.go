// Variant list command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var variantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List variants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		variants, err := store.ListVariants()
		if err != nil {
			return fmt.Errorf("list variants: %w", err)
		}

		if flagJSON {
			return printJSON(variants)
		}
		printVariantTable(variants)
		return nil
	},
}
