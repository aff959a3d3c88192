// Entry set command updates fields on a record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setFields []string

var entrySetCmd = &cobra.Command{
	Use:   "set <entry-id>",
	Short: "Update fields on an entry",
	Long: `Set updates field values on an existing entry. Fields not named are
left unchanged; tags are not touched.

Example:
  seewee entry set 0192f3a1 --field role="Principal Engineer"
  seewee entry set 0192f3a1 --field highlights="Shipped v2,Led the migration"`,
	Args: cobra.ExactArgs(1),
	RunE: runEntrySet,
}

func init() {
	entrySetCmd.Flags().StringArrayVar(&setFields, "field", nil, "field as name=value (repeatable)")
	_ = entrySetCmd.MarkFlagRequired("field")
}

func runEntrySet(cmd *cobra.Command, args []string) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	current, err := store.GetEntry(args[0])
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}

	updates, err := parseFieldArgs(current.Category, setFields)
	if err != nil {
		return err
	}
	for name, v := range updates {
		current.SetField(name, v)
	}

	entry, err := store.UpdateEntry(current.EntryID, current.Fields, nil)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	if flagJSON {
		return printJSON(entry)
	}
	fmt.Printf("Updated entry: %s\n", entry.EntryID)
	return nil
}
