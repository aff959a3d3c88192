// Entry command group for the seewee CLI.
package main

import (
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage career-history entries",
	Long: `Entry manages the atomic career-history records: positions held,
degrees earned, projects, publications, skills and so on. Every entry
belongs to exactly one category and carries the fields that category
declares.`,
}

func init() {
	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryGetCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entrySetCmd)
	entryCmd.AddCommand(entryDeleteCmd)
	entryCmd.AddCommand(entryTagCmd)
	entryCmd.AddCommand(entryCategoriesCmd)
}
