package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatdash/internal/models"
)

// pages arrive newest-first from the server.
func page(ids ...int64) []models.Message {
	out := make([]models.Message, len(ids))
	for i, id := range ids {
		out[i] = models.Message{ID: id}
	}
	return out
}

func TestNewThreadReversesToChronological(t *testing.T) {
	th := NewThread(page(42, 41, 40))

	require.Len(t, th.Messages, 3)
	assert.EqualValues(t, 40, th.Messages[0].ID)
	assert.EqualValues(t, 42, th.Messages[2].ID)
	assert.EqualValues(t, 42, th.LastID)
}

func TestNewThreadEmptyPage(t *testing.T) {
	th := NewThread(nil)
	assert.Empty(t, th.Messages)
	assert.EqualValues(t, 0, th.LastID)
}

func TestApplyPollSameLengthIsUnchanged(t *testing.T) {
	current := NewThread(page(42, 41, 40))

	res := ApplyPoll(current, 0, page(42, 41, 40))
	assert.False(t, res.Changed)
	assert.EqualValues(t, 42, res.Thread.LastID)
}

func TestApplyPollShorterPageIsUnchanged(t *testing.T) {
	current := NewThread(page(42, 41, 40))

	res := ApplyPoll(current, 0, page(42, 41))
	assert.False(t, res.Changed)
	require.Len(t, res.Thread.Messages, 3)
}

func TestApplyPollEchoSuppression(t *testing.T) {
	// A longer page whose tail is the local user's message with the
	// already-remembered id is the server confirming what the client shows
	// and must not trigger a redraw.
	current := NewThread(page(42, 41))

	fresh := page(42, 41, 40)
	fresh[0].IsOutgoing = true // tail after reversal

	res := ApplyPoll(current, 0, fresh)
	assert.False(t, res.Changed)
	assert.EqualValues(t, 42, res.Thread.LastID)
	assert.Len(t, res.Thread.Messages, 2, "displayed thread kept as-is")
}

func TestApplyPollForeignTailRedraws(t *testing.T) {
	current := NewThread(page(42, 41))

	res := ApplyPoll(current, 0, page(43, 42, 41))
	require.True(t, res.Changed)
	assert.EqualValues(t, 43, res.Thread.LastID)
	assert.EqualValues(t, 41, res.Thread.Messages[0].ID)
}

func TestApplyPollOwnNewMessageRedraws(t *testing.T) {
	// A longer page whose outgoing tail carries a NEW id is genuinely new
	// content, not an echo.
	current := NewThread(page(42, 41))

	fresh := page(50, 42, 41)
	fresh[0].SenderID = 7

	res := ApplyPoll(current, 7, fresh)
	assert.True(t, res.Changed)
	assert.EqualValues(t, 50, res.Thread.LastID)
}

func TestApplyPollSenderIDAttribution(t *testing.T) {
	current := Thread{Messages: NewThread(page(42)).Messages, LastID: 42}

	fresh := page(42, 41)
	fresh[0].SenderID = 7 // tail after reversal, not flagged outgoing

	res := ApplyPoll(current, 7, fresh)
	assert.False(t, res.Changed, "sender-id match counts as the local user")
}

func TestOptimisticMessage(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	m := OptimisticMessage(10, 7, "hello", now)

	assert.Equal(t, now.UnixMilli(), m.ID)
	assert.EqualValues(t, 10, m.ChannelID)
	assert.True(t, m.IsOutgoing)
	assert.Equal(t, "hello", m.Content)
	assert.Equal(t, now.Format(time.RFC3339), m.CreatedAt)
}
