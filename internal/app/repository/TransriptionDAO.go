package repository

import (
	"context"

	"v2t/internal/app/model"
)

// TranscriptionDAO stores the conversion history. Rows are only appended and listed;
// nothing reads them back to skip a conversion.
type TranscriptionDAO interface {
	Close() error

	// Record inserts t and sets t.ID.
	Record(ctx context.Context, t *model.Transcription) error

	// List returns the newest rows first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]model.Transcription, error)

	// ListByFamily is List restricted to one model family.
	ListByFamily(ctx context.Context, family string, limit int) ([]model.Transcription, error)
}
