package extract

import (
	"fmt"

	"github.com/spf13/cobra"

	"v2t/cmd/v2t/cmd/common"
	"v2t/internal/app/audio"
)

var outputPath string

func init() {
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "where to write the WAV (default: next to the video)")
}

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract <video>",
	Short: "Extract the audio track of a video as mono 16kHz PCM WAV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := common.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		extractor := audio.NewExtractor(cfg.FFmpeg, cfg.FFprobe, logger)
		out, err := extractor.Extract(cmd.Context(), args[0], outputPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
