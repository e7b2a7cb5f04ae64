package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dvorakm/binimg/binimg"
)

var (
	mergeFormat     string
	mergeNoValidate bool
)

func init() {
	cmd := newMergeCmd()
	cmd.Flags().StringVar(&mergeFormat, "format", "BIN", "Output format (BIN, HEX, S19)")
	cmd.Flags().BoolVar(&mergeNoValidate, "no-validate", false,
		"Skip layout validation; overlapping regions are silently overwritten in offset order")
	rootCmd.AddCommand(cmd)
}

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <config.yaml> <output>",
		Short: "Merge regions from a configuration into one image",
		Long: `The merge command reads a YAML image configuration, places every
region at its offset, validates the layout and writes the assembled image.

Example:
  binimgctl merge flash.yaml flash.bin
  binimgctl merge flash.yaml flash.hex --format HEX`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(args[0], args[1])
		},
	}
}

func runMerge(configPath, outputPath string) error {
	cfg, err := binimg.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// Relative region paths resolve next to the config file.
	img, err := binimg.FromConfig(cfg, []string{filepath.Dir(configPath)})
	if err != nil {
		return err
	}

	if !mergeNoValidate {
		if err := img.Validate(); err != nil {
			return fmt.Errorf("layout validation failed: %w", err)
		}
	}

	if err := img.Save(outputPath, mergeFormat); err != nil {
		return err
	}
	printInfo("Merged %d regions into %s (%d bytes)\n", len(img.Children()), outputPath, img.Len())
	return nil
}
