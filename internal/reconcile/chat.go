// Package reconcile turns freshly polled API payloads into display-ready
// state. Everything here is pure; committing results to the store is the
// caller's job.
package reconcile

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"chatdash/internal/models"
)

var nameCollator = collate.New(language.Und)

// BuildChatList joins the active-channel list with per-channel totals and
// last-message previews into the sorted chat list. Requirement-tracking
// channels are hidden. Unread is total minus the persisted read position,
// clamped at zero, and forced to zero for the active chat.
func BuildChatList(
	channels []models.Channel,
	counts map[int64]int64,
	last map[int64]models.MessagePreview,
	settings models.Settings,
	activeChat int64,
) []models.ChatListEntry {
	entries := make([]models.ChatListEntry, 0, len(channels))
	for _, ch := range channels {
		if ch.IsRequirement || settings.IsRequirementChannel(ch.ID) {
			continue
		}

		total := counts[ch.ID]
		unread := total - settings.ReadCount(ch.ID)
		if unread < 0 || ch.ID == activeChat {
			unread = 0
		}

		entry := models.ChatListEntry{Channel: ch, Total: total, Unread: unread}
		if preview, ok := last[ch.ID]; ok {
			p := preview
			entry.Last = &p
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		return nameCollator.CompareString(a.Name, b.Name) < 0
	})

	return entries
}
