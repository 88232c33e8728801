// Init command creates the config and data directories and an empty
// database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sero configuration and storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dataDir, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		fmt.Printf("Initialized sero store in %s\n", dataDir)
		return nil
	},
}
