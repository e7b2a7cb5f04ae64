package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvorakm/binimg/binimg"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "template",
		Short: "Print a merge configuration template",
		Long: `The template command prints a commented YAML configuration example
for the merge command to stdout.

Example:
  binimgctl template > flash.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(binimg.ConfigTemplate())
			return nil
		},
	})
}
