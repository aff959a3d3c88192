// Entry get command shows one record.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/internal/schema"
)

var entryGetCmd = &cobra.Command{
	Use:   "get <entry-id>",
	Short: "Show an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		entry, err := store.GetEntry(args[0])
		if err != nil {
			return fmt.Errorf("get entry: %w", err)
		}

		if flagJSON {
			return printJSON(entry)
		}

		fmt.Println("ID:      ", entry.EntryID)
		fmt.Println("Category:", entry.Category)
		fmt.Println("Title:   ", schema.Title(entry))
		if sub := schema.Subtitle(entry); sub != "" {
			fmt.Println("Subtitle:", sub)
		}
		if dates := schema.DateRange(entry); dates != "" {
			fmt.Println("Dates:   ", dates)
		}
		if len(entry.Tags) > 0 {
			fmt.Println("Tags:    ", strings.Join(entry.Tags, ", "))
		}
		fmt.Println("Fields:")
		specs, _ := schema.Describe(entry.Category)
		for _, spec := range specs {
			v := entry.Field(spec.Name)
			if v.IsZero() {
				continue
			}
			if list := v.AsList(); list != nil {
				fmt.Printf("  %s: %s\n", spec.Name, strings.Join(list, "; "))
			} else {
				fmt.Printf("  %s: %s\n", spec.Name, v.AsString())
			}
		}
		return nil
	},
}
