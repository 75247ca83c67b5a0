package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"imgcorpus/internal"
)

var (
	widthFlag      int
	heightFlag     int
	imagesFlag     int
	duplicatesFlag int
	seedFlag       uint64
	logFlag        string
)

var generateCmd = &cobra.Command{
	Use:   "generate [output-dir]",
	Short: "Generate unique random PNG images plus duplicate copies",
	Long: `Generate writes --images PNG files with random pixel content into the
output directory (created if missing), then --duplicates byte-for-byte
copies of randomly chosen ones. Every file gets a random 32 hex character
name, so unique and duplicate files are mixed together.

Values not given on the command line come from the config file, then from
the built-in defaults (800x600, 1000 images, 200 duplicates, generated_images).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig(configFlag)
		if err != nil {
			return err
		}

		opts := internal.Options{
			OutputDir:     conf.OutputDir,
			Width:         conf.Width,
			Height:        conf.Height,
			NumImages:     conf.NumImages,
			NumDuplicates: conf.NumDuplicates,
		}
		if len(args) == 1 {
			opts.OutputDir = args[0]
		}

		flags := cmd.Flags()
		if flags.Changed("width") {
			opts.Width = widthFlag
		}
		if flags.Changed("height") {
			opts.Height = heightFlag
		}
		if flags.Changed("images") {
			opts.NumImages = imagesFlag
		}
		if flags.Changed("duplicates") {
			opts.NumDuplicates = duplicatesFlag
		}
		if flags.Changed("seed") {
			opts.Rand = rand.NewChaCha8(seedBytes(seedFlag))
		}

		var logger *internal.Logger
		if logFlag != "" {
			logger, err = internal.NewLogger(logFlag)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer logger.Close()
		}

		_, err = internal.Generate(opts, cmd.OutOrStdout(), logger)
		return err
	},
}

// seedBytes spreads a numeric seed over a ChaCha8 key.
func seedBytes(seed uint64) [32]byte {
	var key [32]byte
	for i := range key {
		key[i] = byte(seed >> (8 * (i % 8)))
	}
	return key
}

func init() {
	generateCmd.Flags().IntVar(&widthFlag, "width", internal.DefaultWidth, "Image width in pixels")
	generateCmd.Flags().IntVar(&heightFlag, "height", internal.DefaultHeight, "Image height in pixels")
	generateCmd.Flags().IntVar(&imagesFlag, "images", internal.DefaultNumImages, "Number of unique images")
	generateCmd.Flags().IntVar(&duplicatesFlag, "duplicates", internal.DefaultNumDuplicates, "Number of duplicate copies")
	generateCmd.Flags().Uint64Var(&seedFlag, "seed", 0, "Seed pixel content and duplicate picks for a reproducible corpus")
	generateCmd.Flags().StringVar(&logFlag, "log", "", "Write one line per generated file to this path")

	rootCmd.AddCommand(generateCmd)
}
