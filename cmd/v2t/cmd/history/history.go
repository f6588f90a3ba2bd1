package history

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"v2t/cmd/v2t/cmd/common"
	"v2t/internal/app"
	"v2t/internal/app/repository"
)

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and export the conversion history",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(exportCmd)
}

// openDAO loads the configuration and opens the history database.
func openDAO(cmd *cobra.Command) (repository.TranscriptionDAO, *zap.Logger, error) {
	cfg, logger, err := common.Setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	dao, err := app.OpenHistory(cfg)
	if err != nil {
		return nil, nil, err
	}
	return dao, logger, nil
}
