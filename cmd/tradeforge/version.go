package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the release version reported by the health endpoint and
// the version subcommand.
const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the TradeForge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tradeforge %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
