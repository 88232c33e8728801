// Version command for the sero CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RamonOpazo/sero-sub005/pkg/sero"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sero version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sero", sero.Version)
	},
}
