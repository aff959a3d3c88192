// Package main provides the seewee CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/seewee/seewee/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seewee:", err)
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) ||
			errors.Is(err, types.ErrInvalidName) || errors.Is(err, types.ErrUnknownCategory) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
}
