package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"imgcorpus/internal"
)

var (
	formatFlag       string
	verifyWidthFlag  int
	verifyHeightFlag int
)

var verifyCmd = &cobra.Command{
	Use:   "verify [folder]",
	Short: "Check a generated corpus and count unique and duplicate files",
	Long: `Verify hashes every PNG file in the folder, groups identical contents and
checks that each file is an opaque truecolor PNG of the expected size.
It fails when any invalid file is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig(configFlag)
		if err != nil {
			return err
		}

		folder := conf.OutputDir
		if len(args) == 1 {
			folder = args[0]
		}
		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("folder does not exist or is not a directory: %s", folder)
		}

		width, height := conf.Width, conf.Height
		if cmd.Flags().Changed("width") {
			width = verifyWidthFlag
		}
		if cmd.Flags().Changed("height") {
			height = verifyHeightFlag
		}

		results, err := internal.Verify(folder, width, height)
		if err != nil {
			return fmt.Errorf("failed to verify folder: %w", err)
		}

		if err := internal.DisplayVerify(cmd.OutOrStdout(), results, formatFlag); err != nil {
			return err
		}
		if n := len(results.InvalidFiles); n > 0 {
			return fmt.Errorf("%d of %d files are not %dx%d truecolor PNGs", n, results.TotalFiles, width, height)
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: table, json")
	verifyCmd.Flags().IntVar(&verifyWidthFlag, "width", internal.DefaultWidth, "Expected image width")
	verifyCmd.Flags().IntVar(&verifyHeightFlag, "height", internal.DefaultHeight, "Expected image height")

	rootCmd.AddCommand(verifyCmd)
}
