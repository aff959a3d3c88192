// Entry tag command manages the tag set on a record.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	tagAdd    []string
	tagRemove []string
)

var entryTagCmd = &cobra.Command{
	Use:   "tag <entry-id>",
	Short: "Add or remove tags on an entry",
	Long: `Tag adjusts the entry's tag set. Tags drive variant rules: a variant
can include or exclude entries by tag when auto-grouping.

Example:
  seewee entry tag 0192f3a1 --add tech --add senior
  seewee entry tag 0192f3a1 --remove draft`,
	Args: cobra.ExactArgs(1),
	RunE: runEntryTag,
}

func init() {
	entryTagCmd.Flags().StringArrayVar(&tagAdd, "add", nil, "tag to add (repeatable)")
	entryTagCmd.Flags().StringArrayVar(&tagRemove, "remove", nil, "tag to remove (repeatable)")
}

func runEntryTag(cmd *cobra.Command, args []string) error {
	if len(tagAdd) == 0 && len(tagRemove) == 0 {
		return fmt.Errorf("nothing to do: pass --add or --remove")
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	entry, err := store.GetEntry(args[0])
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}

	for _, t := range tagAdd {
		entry.AddTag(t)
	}
	for _, t := range tagRemove {
		entry.RemoveTag(t)
	}

	tags := entry.Tags
	if tags == nil {
		// A nil tag list means "leave unchanged" to the store; removing
		// the last tag must clear instead.
		tags = []string{}
	}

	updated, err := store.UpdateEntry(entry.EntryID, nil, tags)
	if err != nil {
		return fmt.Errorf("update tags: %w", err)
	}

	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Tags for %s: %s\n", shortID(updated.EntryID), strings.Join(updated.Tags, ", "))
	return nil
}
