package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chatdash/internal/api"
	"chatdash/internal/models"
)

// RemoteMock is a testify mock for the UI's write/read-on-demand surface.
type RemoteMock struct {
	mock.Mock
}

func (m *RemoteMock) Messages(ctx context.Context, channelID int64, query string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, channelID, query, limit)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *RemoteMock) SendMessage(ctx context.Context, channelID int64, content string) error {
	args := m.Called(ctx, channelID, content)
	return args.Error(0)
}

func (m *RemoteMock) DeleteMessage(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RemoteMock) SaveSettings(ctx context.Context, s models.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *RemoteMock) PinChannel(ctx context.Context, id int64, pinned bool) error {
	args := m.Called(ctx, id, pinned)
	return args.Error(0)
}

func (m *RemoteMock) ToggleChannel(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *RemoteMock) ImageURL(messageID int64) string {
	args := m.Called(messageID)
	return args.String(0)
}

func (m *RemoteMock) CreateRequirement(ctx context.Context, content string) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *RemoteMock) UpdateRequirement(ctx context.Context, id int64, upd api.RequirementUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *RemoteMock) DeleteRequirement(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RemoteMock) AIAssist(ctx context.Context, messages []string, prompt, model string) (string, error) {
	args := m.Called(ctx, messages, prompt, model)
	return args.String(0), args.Error(1)
}

func (m *RemoteMock) LocalModels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	var names []string
	if val := args.Get(0); val != nil {
		names = val.([]string)
	}
	return names, args.Error(1)
}
