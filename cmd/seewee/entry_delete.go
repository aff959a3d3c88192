// Entry delete command removes a record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete an entry",
	Long: `Delete removes an entry. Variant layouts that referenced it keep the
stale reference; exports skip it with a warning until the layout is
saved again.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := store.DeleteEntry(args[0]); err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}

		fmt.Printf("Deleted entry: %s\n", args[0])
		return nil
	},
}
