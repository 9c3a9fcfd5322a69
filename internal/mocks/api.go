package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chatdash/internal/models"
)

// APIMock implements the poller's API surface for tests.
type APIMock struct {
	mock.Mock
}

func (m *APIMock) Status(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *APIMock) Channels(ctx context.Context, activeOnly bool) ([]models.Channel, error) {
	args := m.Called(ctx, activeOnly)
	var list []models.Channel
	if val := args.Get(0); val != nil {
		list = val.([]models.Channel)
	}
	return list, args.Error(1)
}

func (m *APIMock) ChannelCounts(ctx context.Context) (map[int64]int64, error) {
	args := m.Called(ctx)
	var counts map[int64]int64
	if val := args.Get(0); val != nil {
		counts = val.(map[int64]int64)
	}
	return counts, args.Error(1)
}

func (m *APIMock) LastMessages(ctx context.Context) (map[int64]models.MessagePreview, error) {
	args := m.Called(ctx)
	var previews map[int64]models.MessagePreview
	if val := args.Get(0); val != nil {
		previews = val.(map[int64]models.MessagePreview)
	}
	return previews, args.Error(1)
}

func (m *APIMock) Messages(ctx context.Context, channelID int64, query string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, channelID, query, limit)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *APIMock) Requirements(ctx context.Context) ([]models.Requirement, error) {
	args := m.Called(ctx)
	var reqs []models.Requirement
	if val := args.Get(0); val != nil {
		reqs = val.([]models.Requirement)
	}
	return reqs, args.Error(1)
}
