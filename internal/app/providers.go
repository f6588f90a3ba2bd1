package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"v2t/internal/app/audio"
	"v2t/internal/app/converter"
	"v2t/internal/app/repository"
	"v2t/internal/app/repository/sqlite"
	"v2t/internal/app/transcriber"
	"v2t/internal/config"
)

// ProviderSet builds a Converter from a loaded configuration.
var ProviderSet = wire.NewSet(
	provideExtractor,
	provideTranscriber,
	provideTranscriptionDAO,
	converter.NewConverter,
	wire.Bind(new(converter.Transcriber), new(*transcriber.Transcriber)),
	wire.Bind(new(converter.MediaProber), new(*audio.Extractor)),
)

func provideExtractor(cfg *config.Config, logger *zap.Logger) *audio.Extractor {
	return audio.NewExtractor(cfg.FFmpeg, cfg.FFprobe, logger)
}

// provideTranscriber loads the configured model; the cleanup closes it.
func provideTranscriber(ctx context.Context, cfg *config.Config, extractor *audio.Extractor, logger *zap.Logger) (*transcriber.Transcriber, func(), error) {
	t, err := transcriber.New(ctx, cfg.Model,
		transcriber.WithSettings(cfg.ProviderSettings()),
		transcriber.WithExtractor(extractor),
		transcriber.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return t, func() {
		if err := t.Close(); err != nil {
			logger.Warn("failed to close model", zap.Error(err))
		}
	}, nil
}

// provideTranscriptionDAO opens the history database unless history is disabled,
// in which case the DAO is nil.
func provideTranscriptionDAO(cfg *config.Config, logger *zap.Logger) (repository.TranscriptionDAO, func(), error) {
	if cfg.History.Disabled {
		return nil, func() {}, nil
	}
	db, err := sqlite.NewSQLiteDB(cfg.DBPath())
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close history database", zap.Error(err))
		}
	}, nil
}

// OpenHistory opens the history database for read-only commands.
func OpenHistory(cfg *config.Config) (repository.TranscriptionDAO, error) {
	db, err := sqlite.NewSQLiteDB(cfg.DBPath())
	if err != nil {
		return nil, err
	}
	return db, nil
}
