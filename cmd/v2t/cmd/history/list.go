package history

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"v2t/internal/app/api/provider"
	"v2t/internal/app/model"
)

const snippetLen = 60

var (
	limit  int
	family string
)

func init() {
	listCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of rows, 0 for all")
	listCmd.Flags().StringVarP(&family, "model", "m", "", "only show conversions made with this model family")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dao, logger, err := openDAO(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer dao.Close()

		var rows []model.Transcription
		if family != "" {
			f, err := provider.ParseFamily(family)
			if err != nil {
				return err
			}
			rows, err = dao.ListByFamily(cmd.Context(), f.String(), limit)
			if err != nil {
				return err
			}
		} else {
			rows, err = dao.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
		}
		return printRows(cmd.OutOrStdout(), rows, time.Now())
	},
}

func printRows(out io.Writer, rows []model.Transcription, now time.Time) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "no conversions recorded")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tMODEL\tDURATION\tVIDEO\tTEXT")
	for _, r := range rows {
		text := snippet(r.Transcription)
		if r.HasError {
			text = "error: " + snippet(r.ErrorMessage)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s/%s\t%ds\t%s\t%s\n",
			r.ID,
			humanize.RelTime(r.LastConversionTime, now, "ago", "from now"),
			r.ModelFamily, r.ModelName,
			r.AudioDuration,
			r.VideoPath,
			text)
	}
	return tw.Flush()
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > snippetLen {
		return string(r[:snippetLen-3]) + "..."
	}
	return s
}
