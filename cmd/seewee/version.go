// Version command for the seewee CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/pkg/seewee"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the seewee version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("seewee", seewee.Version)
	},
}
