// Entry add command creates a new career-history record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/pkg/types"
)

var (
	addFields []string
	addTags   []string
)

var entryAddCmd = &cobra.Command{
	Use:   "add <category>",
	Short: "Create a new entry",
	Long: `Add creates a new entry in the given category.

Fields are passed as repeated --field name=value pairs; list fields
(highlights, skill_list, tech_stack) take comma-separated values.

Example:
  seewee entry add experience --field role="Staff Engineer" --field company=Initech
  seewee entry add education --field degree="BSc CS" --field school="State University"
  seewee entry add skill --field category=Languages --field skill_list=Go,Python --tag tech`,
	Args: cobra.ExactArgs(1),
	RunE: runEntryAdd,
}

func init() {
	entryAddCmd.Flags().StringArrayVar(&addFields, "field", nil, "field as name=value (repeatable)")
	entryAddCmd.Flags().StringArrayVar(&addTags, "tag", nil, "tag to attach (repeatable)")
}

func runEntryAdd(cmd *cobra.Command, args []string) error {
	category := types.Category(args[0])
	if !category.Valid() {
		return fmt.Errorf("category %q: %w", args[0], types.ErrUnknownCategory)
	}

	fields, err := parseFieldArgs(category, addFields)
	if err != nil {
		return err
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	entry, err := store.CreateEntry(category, fields, addTags)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	if flagJSON {
		return printJSON(entry)
	}
	fmt.Printf("Created %s entry: %s\n", entry.Category, entry.EntryID)
	return nil
}
