package models

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"v2t/cmd/v2t/cmd/common"
	"v2t/internal/downloader"
)

// Cmd represents the models command
var Cmd = &cobra.Command{
	Use:   "models",
	Short: "List and download ggml weights for the local whisper families",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known model sizes and the installed weights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := common.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		installed, err := downloader.NewModelDownloader(cfg.ModelsDir, logger).Installed()
		if err != nil {
			return err
		}
		return printModels(cmd.OutOrStdout(), installed, cfg.ModelSize)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download [size]",
	Short: "Download ggml weights into the models directory",
	Long: `Download ggml weights into the models directory

The size defaults to the configured model size. Weights already present are
left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := common.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		size := cfg.ModelSize
		if len(args) == 1 {
			size = args[0]
		}

		d := downloader.NewModelDownloader(cfg.ModelsDir, logger)
		d.Progress = os.Stderr
		path, err := d.Download(cmd.Context(), size)
		if err != nil {
			return err
		}
		logger.Info("model ready", zap.String("size", size), zap.String("path", path))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(downloadCmd)
}

func printModels(out io.Writer, installed []downloader.InstalledModel, current string) error {
	bySize := lo.KeyBy(installed, func(m downloader.InstalledModel) string { return m.Size })

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIZE\tINSTALLED\tPATH")
	for _, size := range downloader.Sizes {
		marker := ""
		if size == current {
			marker = " *"
		}
		m, ok := bySize[size]
		if !ok {
			fmt.Fprintf(tw, "%s%s\t-\t\n", size, marker)
			continue
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", size, marker, humanize.Bytes(uint64(m.Bytes)), m.Path)
	}
	for _, m := range installed {
		if !downloader.KnownSize(m.Size) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Size, humanize.Bytes(uint64(m.Bytes)), m.Path)
		}
	}
	return tw.Flush()
}
