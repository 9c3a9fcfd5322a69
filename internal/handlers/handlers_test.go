package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatdash/internal/mocks"
	"chatdash/internal/models"
	"chatdash/internal/repositories"
)

type testRepos struct {
	channels     *mocks.ChannelRepositoryMock
	messages     *mocks.MessageRepositoryMock
	requirements *mocks.RequirementRepositoryMock
	settings     *mocks.SettingsRepositoryMock
}

func setupRouter() (*gin.Engine, testRepos) {
	gin.SetMode(gin.TestMode)
	repos := testRepos{
		channels:     new(mocks.ChannelRepositoryMock),
		messages:     new(mocks.MessageRepositoryMock),
		requirements: new(mocks.RequirementRepositoryMock),
		settings:     new(mocks.SettingsRepositoryMock),
	}
	r := gin.New()
	Register(r, Deps{
		Channels:     repos.channels,
		Messages:     repos.messages,
		Requirements: repos.requirements,
		Settings:     repos.settings,
	})
	return r, repos
}

func TestListChannelsFlagsRequirementTrackers(t *testing.T) {
	router, repos := setupRouter()

	repos.channels.On("List", mock.Anything, false).Return([]models.Channel{
		{ID: 10, Name: "alpha"},
		{ID: 20, Name: "tracker"},
	}, nil).Once()
	settings := models.DefaultSettings()
	settings.RequirementChannels = []int64{20}
	repos.settings.On("Get", mock.Anything).Return(settings, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/channels", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Channels []models.Channel `json:"channels"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Channels, 2)
	assert.False(t, resp.Channels[0].IsRequirement)
	assert.True(t, resp.Channels[1].IsRequirement)
	repos.channels.AssertExpectations(t)
	repos.settings.AssertExpectations(t)
}

func TestListChannelsActiveOnly(t *testing.T) {
	router, repos := setupRouter()

	repos.channels.On("List", mock.Anything, true).Return([]models.Channel{}, nil).Once()
	repos.settings.On("Get", mock.Anything).Return(models.DefaultSettings(), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/channels?active_only=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repos.channels.AssertExpectations(t)
}

func TestToggleChannelNotFound(t *testing.T) {
	router, repos := setupRouter()

	repos.channels.On("SetActive", mock.Anything, int64(99), true).
		Return(repositories.ErrChannelNotFound).Once()

	body := bytes.NewBufferString(`{"active":true}`)
	req := httptest.NewRequest(http.MethodPost, "/channels/99/toggle", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	repos.channels.AssertExpectations(t)
}

func TestPinChannelSuccess(t *testing.T) {
	router, repos := setupRouter()

	repos.channels.On("SetPinned", mock.Anything, int64(10), true).Return(nil).Once()

	body := bytes.NewBufferString(`{"pinned":true}`)
	req := httptest.NewRequest(http.MethodPost, "/channels/10/pin", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repos.channels.AssertExpectations(t)
}

func TestChannelCountsEncodesStringKeys(t *testing.T) {
	router, repos := setupRouter()

	repos.messages.On("CountsByChannel", mock.Anything).
		Return(map[int64]int64{10: 42}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/channel_counts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(42), resp["10"])
	repos.messages.AssertExpectations(t)
}

func TestPurgeChannelMessages(t *testing.T) {
	router, repos := setupRouter()

	repos.messages.On("DeleteByChannel", mock.Anything, int64(10)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/channels/10/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repos.messages.AssertExpectations(t)
}

func TestListMessagesRequiresChannelID(t *testing.T) {
	router, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMessagesPassesQuery(t *testing.T) {
	router, repos := setupRouter()

	repos.messages.On("Page", mock.Anything, int64(10), "hello", 25).
		Return([]models.Message{{ID: 1, Content: "hello there"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages?channel_id=10&q=hello&limit=25", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Messages, 1)
	repos.messages.AssertExpectations(t)
}

func TestSendMessageSuccess(t *testing.T) {
	router, repos := setupRouter()

	repos.messages.On("CreateOutgoing", mock.Anything, int64(10), "hi").
		Return(models.Message{ID: 5, ChannelID: 10, Content: "hi", IsOutgoing: true}, nil).Once()

	body := bytes.NewBufferString(`{"channel_id":10,"content":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/send_message", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool           `json:"success"`
		Message models.Message `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Message.IsOutgoing)
	repos.messages.AssertExpectations(t)
}

func TestSendMessageMissingContent(t *testing.T) {
	router, _ := setupRouter()

	body := bytes.NewBufferString(`{"channel_id":10}`)
	req := httptest.NewRequest(http.MethodPost, "/send_message", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMessageNotFound(t *testing.T) {
	router, repos := setupRouter()

	repos.messages.On("Delete", mock.Anything, int64(404)).
		Return(repositories.ErrMessageNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/messages/404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	repos.messages.AssertExpectations(t)
}

func TestCreateRequirement(t *testing.T) {
	router, repos := setupRouter()

	repos.requirements.On("Create", mock.Anything, "ship it").
		Return(models.Requirement{ID: 3, Content: "ship it", Status: models.StatusPending}, nil).Once()

	body := bytes.NewBufferString(`{"content":"ship it"}`)
	req := httptest.NewRequest(http.MethodPost, "/requirements", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repos.requirements.AssertExpectations(t)
}

func TestUpdateRequirementEmptyPatch(t *testing.T) {
	router, _ := setupRouter()

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPut, "/requirements/3", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRequirementStatus(t *testing.T) {
	router, repos := setupRouter()

	done := models.StatusDone
	repos.requirements.On("Update", mock.Anything, int64(3), &done, (*bool)(nil)).
		Return(nil).Once()

	body := bytes.NewBufferString(`{"status":"done"}`)
	req := httptest.NewRequest(http.MethodPut, "/requirements/3", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repos.requirements.AssertExpectations(t)
}

func TestSettingsRoundTrip(t *testing.T) {
	router, repos := setupRouter()

	stored := models.DefaultSettings()
	stored.Theme = "light"
	repos.settings.On("Put", mock.Anything, mock.MatchedBy(func(s models.Settings) bool {
		return s.Theme == "light"
	})).Return(nil).Once()
	repos.settings.On("Get", mock.Anything).Return(stored, nil).Once()

	payload, err := json.Marshal(stored)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/settings", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/settings", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Settings
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "light", got.Theme)
	repos.settings.AssertExpectations(t)
}

func TestStatusAlwaysConnected(t *testing.T) {
	router, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Connected bool `json:"connected"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Connected)
}

func TestAIAssistEchoesLastMessage(t *testing.T) {
	router, _ := setupRouter()

	body := bytes.NewBufferString(`{"messages":["first","Need a quote"],"prompt":"p","model":"m"}`)
	req := httptest.NewRequest(http.MethodPost, "/ai_assist", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool   `json:"success"`
		Reply   string `json:"reply"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Reply, "Need a quote")
}

func TestImageAlwaysMissing(t *testing.T) {
	router, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/image/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTagsListsModels(t *testing.T) {
	router, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Models)
	assert.NotEmpty(t, resp.Models[0].Name)
}
