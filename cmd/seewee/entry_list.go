// Entry list command queries records.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/internal/schema"
	"github.com/seewee/seewee/pkg/types"
)

var listCategory string

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries",
	Long: `List fetches entries and displays them, most recently updated first.

Use --category to filter.

Example:
  seewee entry list
  seewee entry list --category experience
  seewee entry list --json`,
	Args: cobra.NoArgs,
	RunE: runEntryList,
}

func init() {
	entryListCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
}

func runEntryList(cmd *cobra.Command, args []string) error {
	category := types.Category(listCategory)
	if listCategory != "" && !category.Valid() {
		return fmt.Errorf("category %q: %w", listCategory, types.ErrUnknownCategory)
	}

	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	entries, err := store.ListEntries(category)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	if flagJSON {
		return printJSON(entries)
	}

	printEntryTable(entries)
	return nil
}

// printEntryTable prints entries in a human-readable table format.
func printEntryTable(entries []*types.Entry) {
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tCATEGORY\tTITLE\tTAGS")
	fmt.Fprintln(w, "--\t--------\t-----\t----")
	for _, e := range entries {
		title := schema.Title(e)
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(e.EntryID),
			e.Category,
			title,
			strings.Join(e.Tags, ","),
		)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d entries\n", len(entries))
}
