package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chatdash/internal/models"
)

// ChannelRepositoryMock is a testify mock for the channel repository.
type ChannelRepositoryMock struct {
	mock.Mock
}

func (m *ChannelRepositoryMock) List(ctx context.Context, activeOnly bool) ([]models.Channel, error) {
	args := m.Called(ctx, activeOnly)
	var list []models.Channel
	if val := args.Get(0); val != nil {
		list = val.([]models.Channel)
	}
	return list, args.Error(1)
}

func (m *ChannelRepositoryMock) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *ChannelRepositoryMock) SetPinned(ctx context.Context, id int64, pinned bool) error {
	args := m.Called(ctx, id, pinned)
	return args.Error(0)
}

// MessageRepositoryMock is a testify mock for the message repository.
type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Page(ctx context.Context, channelID int64, query string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, channelID, query, limit)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) CountsByChannel(ctx context.Context) (map[int64]int64, error) {
	args := m.Called(ctx)
	var counts map[int64]int64
	if val := args.Get(0); val != nil {
		counts = val.(map[int64]int64)
	}
	return counts, args.Error(1)
}

func (m *MessageRepositoryMock) LatestByChannel(ctx context.Context) (map[int64]models.MessagePreview, error) {
	args := m.Called(ctx)
	var previews map[int64]models.MessagePreview
	if val := args.Get(0); val != nil {
		previews = val.(map[int64]models.MessagePreview)
	}
	return previews, args.Error(1)
}

func (m *MessageRepositoryMock) CreateOutgoing(ctx context.Context, channelID int64, content string) (models.Message, error) {
	args := m.Called(ctx, channelID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MessageRepositoryMock) DeleteByChannel(ctx context.Context, channelID int64) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

// RequirementRepositoryMock is a testify mock for the requirement repository.
type RequirementRepositoryMock struct {
	mock.Mock
}

func (m *RequirementRepositoryMock) List(ctx context.Context) ([]models.Requirement, error) {
	args := m.Called(ctx)
	var reqs []models.Requirement
	if val := args.Get(0); val != nil {
		reqs = val.([]models.Requirement)
	}
	return reqs, args.Error(1)
}

func (m *RequirementRepositoryMock) Create(ctx context.Context, content string) (models.Requirement, error) {
	args := m.Called(ctx, content)
	var req models.Requirement
	if val := args.Get(0); val != nil {
		req = val.(models.Requirement)
	}
	return req, args.Error(1)
}

func (m *RequirementRepositoryMock) Update(ctx context.Context, id int64, status *string, pinned *bool) error {
	args := m.Called(ctx, id, status, pinned)
	return args.Error(0)
}

func (m *RequirementRepositoryMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SettingsRepositoryMock is a testify mock for the settings repository.
type SettingsRepositoryMock struct {
	mock.Mock
}

func (m *SettingsRepositoryMock) Get(ctx context.Context) (models.Settings, error) {
	args := m.Called(ctx)
	var s models.Settings
	if val := args.Get(0); val != nil {
		s = val.(models.Settings)
	}
	return s, args.Error(1)
}

func (m *SettingsRepositoryMock) Put(ctx context.Context, s models.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
