package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatdash/internal/models"
)

func req(id int64, source, content string) models.Requirement {
	return models.Requirement{
		ID:        id,
		Content:   content,
		Status:    models.StatusPending,
		RawSource: source,
		Source:    models.ParseSource(source),
	}
}

func TestGroupRequirementsOrphanRepliesDropped(t *testing.T) {
	groups := GroupRequirements([]models.Requirement{
		req(1, "channel:10:5", "x"),
		req(2, "reply:10:5", "y"),
		req(3, "reply:10:99", "orphan"),
	})

	require.Len(t, groups, 1, "orphan reply must not surface")
	assert.Equal(t, "10:5", groups[0].Key)
	assert.Equal(t, "x", groups[0].Main.Content)
	require.Len(t, groups[0].Replies, 1)
	assert.Equal(t, "y", groups[0].Replies[0].Content)
}

func TestGroupRequirementsReplyBeforeParent(t *testing.T) {
	// Arrival order must not matter: a reply seen before its channel
	// record still attaches to the group.
	groups := GroupRequirements([]models.Requirement{
		req(2, "reply:10:5", "y"),
		req(1, "channel:10:5", "x"),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "x", groups[0].Main.Content)
	require.Len(t, groups[0].Replies, 1)
}

func TestGroupRequirementsChannelRecordOverwritesMain(t *testing.T) {
	groups := GroupRequirements([]models.Requirement{
		req(1, "channel:10:5", "first"),
		req(2, "channel:10:5", "second"),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "second", groups[0].Main.Content)
}

func TestGroupRequirementsManualAreSingletons(t *testing.T) {
	groups := GroupRequirements([]models.Requirement{
		req(1, "manual", "a"),
		req(2, "", "b"),
		req(3, "webhook:1:2", "c"),
	})

	assert.Len(t, groups, 3, "manual requirements never merge")
}

func TestSortPinOutranksStatus(t *testing.T) {
	pinnedDone := req(1, "manual", "pinned done")
	pinnedDone.Pinned = true
	pinnedDone.Status = models.StatusDone
	pinnedDone.CreatedAt = "2024-01-01T00:00:00"

	pending := req(2, "manual", "pending")
	pending.CreatedAt = "2024-06-01T00:00:00"

	groups := GroupRequirements([]models.Requirement{pinnedDone, pending})

	require.Len(t, groups, 2)
	assert.Equal(t, "pinned done", groups[0].Main.Content, "pin outranks status")
}

func TestSortPendingBeforeDoneThenNewestFirst(t *testing.T) {
	done := req(1, "manual", "done")
	done.Status = models.StatusDone
	done.CreatedAt = "2024-06-01T00:00:00"

	oldPending := req(2, "manual", "old pending")
	oldPending.CreatedAt = "2024-01-01T00:00:00"

	newPending := req(3, "manual", "new pending")
	newPending.CreatedAt = "2024-05-01T00:00:00"

	groups := GroupRequirements([]models.Requirement{done, oldPending, newPending})

	require.Len(t, groups, 3)
	assert.Equal(t, "new pending", groups[0].Main.Content)
	assert.Equal(t, "old pending", groups[1].Main.Content)
	assert.Equal(t, "done", groups[2].Main.Content)
}

func TestGroupRequirementsEmptyInput(t *testing.T) {
	assert.Empty(t, GroupRequirements(nil))
}
