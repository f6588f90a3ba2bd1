package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"v2t/internal/app/model"
)

// MockTranscriptionDAO is a testify mock of repository.TranscriptionDAO.
type MockTranscriptionDAO struct {
	mock.Mock
}

func (m *MockTranscriptionDAO) Record(ctx context.Context, t *model.Transcription) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTranscriptionDAO) List(ctx context.Context, limit int) ([]model.Transcription, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]model.Transcription)
	return rows, args.Error(1)
}

func (m *MockTranscriptionDAO) ListByFamily(ctx context.Context, family string, limit int) ([]model.Transcription, error) {
	args := m.Called(ctx, family, limit)
	rows, _ := args.Get(0).([]model.Transcription)
	return rows, args.Error(1)
}

func (m *MockTranscriptionDAO) Close() error {
	return m.Called().Error(0)
}
