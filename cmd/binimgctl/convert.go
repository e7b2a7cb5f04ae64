package main

import (
	"github.com/spf13/cobra"

	"github.com/dvorakm/binimg/binimg"
)

var (
	convertFormat string
	convertOffset int
)

func init() {
	cmd := newConvertCmd()
	cmd.Flags().StringVar(&convertFormat, "format", "BIN", "Output format (BIN, HEX, S19)")
	cmd.Flags().IntVar(&convertOffset, "offset", 0, "Place the image at this base address")
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a firmware file between formats",
		Long: `The convert command decodes a firmware file (flat binary, Intel HEX,
Motorola S-record or ELF) and writes it back in the requested format.

Example:
  binimgctl convert app.elf app.bin
  binimgctl convert app.bin app.s19 --format S19 --offset 0x60000000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], args[1])
		},
	}
}

func runConvert(inputPath, outputPath string) error {
	img, err := binimg.LoadBinaryImage(inputPath, &binimg.LoadOptions{Offset: convertOffset})
	if err != nil {
		return err
	}
	if err := img.Save(outputPath, convertFormat); err != nil {
		return err
	}
	printInfo("Converted %s to %s (%s, %d bytes)\n", inputPath, outputPath, convertFormat, img.Len())
	return nil
}
