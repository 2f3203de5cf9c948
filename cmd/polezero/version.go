package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/polezero"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of polezero",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "polezero version %s\n", strings.TrimSpace(polezero.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
