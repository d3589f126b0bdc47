package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set by the build via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the termquest version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("termquest", version)
	},
}
