// Variant delete command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var variantDeleteCmd = &cobra.Command{
	Use:   "delete <variant-id>",
	Short: "Delete a variant",
	Long: `Delete removes a variant together with its layout. Entries are never
touched; they belong to the shared pool.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.DeleteVariant(args[0]); err != nil {
			return fmt.Errorf("delete variant: %w", err)
		}

		fmt.Printf("Deleted variant: %s\n", args[0])
		return nil
	},
}
