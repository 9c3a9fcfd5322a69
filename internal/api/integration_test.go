package api

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatdash/internal/db"
	"chatdash/internal/handlers"
	"chatdash/internal/models"
	"chatdash/internal/repositories"
)

// startStub runs the real stub API against a throwaway database.
func startStub(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.Connect(filepath.Join(t.TempDir(), "stub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	router := gin.New()
	handlers.Register(router, handlers.Deps{
		Channels:     repositories.NewChannelRepo(database),
		Messages:     repositories.NewMessageRepo(database),
		Requirements: repositories.NewRequirementRepo(database),
		Settings:     repositories.NewSettingsRepo(database),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	_, err = database.Exec(`INSERT INTO channels (id, name, active, pinned) VALUES (10, 'alpha', 1, 0)`)
	require.NoError(t, err)

	return New(server.URL, server.URL, 2*time.Second)
}

func TestSettingsRoundTripIsIdempotent(t *testing.T) {
	client := startStub(t)
	ctx := context.Background()

	settings, err := client.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings().Theme, settings.Theme)

	settings.Theme = "light"
	settings.SetRead(10, 4)
	settings.RequirementChannels = []int64{55}

	require.NoError(t, client.SaveSettings(ctx, settings))
	got, err := client.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, got)

	// Writing the same blob again must not change what is read back.
	require.NoError(t, client.SaveSettings(ctx, got))
	again, err := client.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestMessageFlowAgainstStub(t *testing.T) {
	client := startStub(t)
	ctx := context.Background()

	require.NoError(t, client.SendMessage(ctx, 10, "hello"))
	require.NoError(t, client.SendMessage(ctx, 10, "world"))

	page, err := client.Messages(ctx, 10, "", 50)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "world", page[0].Content) // newest first
	assert.True(t, page[0].IsOutgoing)

	counts, err := client.ChannelCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[10])

	last, err := client.LastMessages(ctx)
	require.NoError(t, err)
	require.Contains(t, last, int64(10))
	assert.Equal(t, "world", last[10].Content)

	require.NoError(t, client.DeleteMessage(ctx, page[0].ID))
	page, err = client.Messages(ctx, 10, "", 50)
	require.NoError(t, err)
	require.Len(t, page, 1)

	require.NoError(t, client.PurgeChannelMessages(ctx, 10))
	page, err = client.Messages(ctx, 10, "", 50)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestRequirementFlowAgainstStub(t *testing.T) {
	client := startStub(t)
	ctx := context.Background()

	require.NoError(t, client.CreateRequirement(ctx, "confirm terms"))

	reqs, err := client.Requirements(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, models.StatusPending, reqs[0].Status)
	assert.Equal(t, models.SourceManual, reqs[0].Source.Kind)

	done := models.StatusDone
	pinned := true
	require.NoError(t, client.UpdateRequirement(ctx, reqs[0].ID, RequirementUpdate{Status: &done, Pinned: &pinned}))

	reqs, err = client.Requirements(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, models.StatusDone, reqs[0].Status)
	assert.True(t, reqs[0].Pinned)

	require.NoError(t, client.DeleteRequirement(ctx, reqs[0].ID))
	reqs, err = client.Requirements(ctx)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestChannelToggleAgainstStub(t *testing.T) {
	client := startStub(t)
	ctx := context.Background()

	require.NoError(t, client.ToggleChannel(ctx, 10, false))
	channels, err := client.Channels(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, channels)

	require.NoError(t, client.ToggleChannel(ctx, 10, true))
	require.NoError(t, client.PinChannel(ctx, 10, true))
	channels, err = client.Channels(ctx, true)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.True(t, channels[0].Pinned)
}
