package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dvorakm/binimg/binimg"
)

var (
	infoNoDraw bool
	infoAlign  int
)

func init() {
	cmd := newInfoCmd()
	cmd.Flags().BoolVar(&infoNoDraw, "no-draw", false, "Suppress the layout diagram")
	cmd.Flags().IntVar(&infoAlign, "align", 0, "Also show sector-aligned ranges for this alignment")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "Show the layout of a firmware file",
		Long: `The info command decodes a firmware file and prints every decoded
region with its address range, plus an ASCII diagram of the layout.

Example:
  binimgctl info app.hex
  binimgctl info app.s19 --align 4096`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

func runInfo(inputPath string) error {
	img, err := binimg.LoadBinaryImage(inputPath, nil)
	if err != nil {
		return err
	}

	fmt.Print(img.Info())
	for _, child := range img.Children() {
		fmt.Println()
		fmt.Print(child.Info())
		if infoAlign > 0 {
			fmt.Printf("Aligned(%d): start 0x%X, length 0x%X\n",
				infoAlign, child.AlignedStart(infoAlign), child.AlignedLength(infoAlign))
		}
	}

	if err := img.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: layout is invalid: %v\n", err)
	}

	if !infoNoDraw {
		fmt.Print(img.Draw())
	}
	return nil
}
