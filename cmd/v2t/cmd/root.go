package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"v2t/cmd/v2t/cmd/common"
	"v2t/cmd/v2t/cmd/convert"
	"v2t/cmd/v2t/cmd/extract"
	"v2t/cmd/v2t/cmd/history"
	"v2t/cmd/v2t/cmd/models"
	"v2t/cmd/v2t/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "v2t",
	Short: "Convert a video file to text with a speech-recognition model",
	Long: `Convert a video file to text with a speech-recognition model.
- The audio track is extracted with ffmpeg as mono 16kHz PCM WAV
- The audio is transcribed by whisper (in-process), whisper.cpp (CLI), OpenAI or Gemini
- Every conversion is recorded in a local sqlite history.`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// SIGINT and SIGTERM cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(extract.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(models.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&common.Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&common.ConfigPath, "config", "", "config file (default is ./v2t.yaml when present)")
}
