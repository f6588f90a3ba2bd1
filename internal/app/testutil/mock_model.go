package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"v2t/internal/app/model"
)

// MockModel is a testify mock of api.Model. Only Transcribe goes through the mock;
// Name and Close are plain so tests need not set expectations for them.
type MockModel struct {
	mock.Mock
	ModelName string
	Closed    bool
}

// NewMockModel returns a MockModel named name.
func NewMockModel(name string) *MockModel {
	return &MockModel{ModelName: name}
}

func (m *MockModel) Transcribe(ctx context.Context, audioPath string) (*model.Result, error) {
	args := m.Called(ctx, audioPath)
	res, _ := args.Get(0).(*model.Result)
	return res, args.Error(1)
}

func (m *MockModel) Name() string { return m.ModelName }

func (m *MockModel) Close() error {
	m.Closed = true
	return nil
}
