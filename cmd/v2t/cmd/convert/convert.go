package convert

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"v2t/cmd/v2t/cmd/common"
	"v2t/internal/app"
	"v2t/internal/app/converter"
	"v2t/internal/config"
)

var (
	modelID    string
	modelSize  string
	language   string
	audioPath  string
	outputPath string
	keepAudio  bool
	noHistory  bool
	progress   bool
	metricsOut string
)

func init() {
	Cmd.Flags().StringVarP(&modelID, "model", "m", "", "model family: whisper, whisper_cpp, openai or gemini")
	Cmd.Flags().StringVar(&modelSize, "size", "", "ggml model size for the local families, e.g. base or small.en")
	Cmd.Flags().StringVarP(&language, "language", "l", "", "spoken language hint, auto to detect")
	Cmd.Flags().StringVarP(&audioPath, "audio", "a", "", "where to write the extracted WAV (default: next to the video)")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the transcript to this file instead of stdout")
	Cmd.Flags().BoolVar(&keepAudio, "keep-audio", false, "keep the extracted WAV after transcription")
	Cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the conversion in the history database")
	Cmd.Flags().StringVar(&metricsOut, "metrics-file", "", "write conversion metrics in the Prometheus text format to this file")
	Cmd.Flags().BoolVar(&progress, "progress", false, "show progress even when stderr is not a terminal")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:     "transcribe <video>",
	Aliases: []string{"convert"},
	Short:   "Convert a video file to text",
	Long: `Convert a video file to text

- Extract the audio track as mono 16kHz PCM WAV
- Transcribe it with the selected model family
- Print the transcript, or write it to --output`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := common.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if err := applyFlags(cmd, cfg); err != nil {
			return err
		}

		ctx := cmd.Context()
		conv, cleanup, err := app.InitializeConverter(ctx, cfg, logger, converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(progress),
			Writer:  os.Stderr,
		})
		if err != nil {
			return err
		}
		defer cleanup()
		defer conv.Close()

		var registry *prometheus.Registry
		if metricsOut != "" {
			registry = prometheus.NewRegistry()
			metrics, err := converter.NewMetrics(registry)
			if err != nil {
				return err
			}
			conv.SetMetrics(metrics)
		}

		row, err := conv.Convert(ctx, args[0], converter.Options{AudioPath: audioPath, KeepAudio: keepAudio})
		if registry != nil {
			if werr := prometheus.WriteToTextfile(metricsOut, registry); werr != nil {
				logger.Warn("failed to write metrics", zap.String("path", metricsOut), zap.Error(werr))
			}
		}
		if err != nil {
			return err
		}

		if outputPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), row.Transcription)
			return nil
		}
		if err := os.WriteFile(outputPath, []byte(row.Transcription+"\n"), 0o644); err != nil {
			return err
		}
		logger.Info("transcript written", zap.String("path", outputPath))
		return nil
	},
}

// applyFlags layers the flags the user set on top of the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = modelID
	}
	if flags.Changed("size") {
		cfg.ModelSize = modelSize
	}
	if flags.Changed("language") {
		cfg.Language = language
	}
	if flags.Changed("no-history") {
		cfg.History.Disabled = noHistory
	}
	return cfg.Validate()
}
