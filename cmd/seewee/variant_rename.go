// Variant rename command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var variantRenameCmd = &cobra.Command{
	Use:   "rename <variant-id> <new-name>",
	Short: "Rename a variant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.UpdateVariantName(args[0], args[1]); err != nil {
			return fmt.Errorf("rename variant: %w", err)
		}

		fmt.Printf("Renamed variant %s to %q\n", shortID(args[0]), args[1])
		return nil
	},
}
