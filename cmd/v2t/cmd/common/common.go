// Package common holds the state shared by the v2t subcommands: the persistent
// flags, configuration loading and the logger.
package common

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	applog "v2t/internal/app/common"
	"v2t/internal/config"
)

var (
	// ConfigPath is bound to --config.
	ConfigPath string
	// Verbose is bound to --verbose.
	Verbose bool
)

// LoadConfig loads the configuration named by --config.
func LoadConfig() (*config.Config, error) {
	return config.Load(ConfigPath)
}

// NewLogger returns the development logger under --verbose and the quiet
// production logger otherwise.
func NewLogger() (*zap.Logger, error) {
	return applog.NewLogger(Verbose)
}

// Setup loads the configuration and the logger for a command.
func Setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := NewLogger()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("configuration loaded",
		zap.String("command", cmd.CommandPath()),
		zap.String("model", cfg.Model),
		zap.String("models_dir", cfg.ModelsDir),
		zap.String("data_dir", cfg.DataDir))
	return cfg, logger, nil
}
