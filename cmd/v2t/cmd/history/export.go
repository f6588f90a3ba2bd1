package history

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"v2t/internal/app/converter/export"
)

var (
	exportPath  string
	exportLimit int
)

func init() {
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "transcriptions.xlsx", "excel file to write")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum number of rows, 0 for all")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion history to an Excel file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dao, logger, err := openDAO(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer dao.Close()

		rows, err := dao.List(cmd.Context(), exportLimit)
		if err != nil {
			return err
		}
		if err := export.ToExcel(rows, exportPath); err != nil {
			return err
		}
		logger.Info("history exported", zap.String("path", exportPath), zap.Int("rows", len(rows)))
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", len(rows), exportPath)
		return nil
	},
}
