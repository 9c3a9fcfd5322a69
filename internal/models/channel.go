package models

// Channel represents a monitored conversation source. The server owns the
// channel list; the client only toggles active/pinned through the API.
type Channel struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Type          string `db:"type" json:"type"` // private, group or channel
	LastMessageAt string `db:"last_message_at" json:"last_message_at,omitempty"`
	Active        bool   `db:"active" json:"active"`
	Pinned        bool   `db:"pinned" json:"pinned"`
	IsRequirement bool   `db:"-" json:"is_requirement_channel"`
}

// MessagePreview is the latest-message summary shown in the chat list.
type MessagePreview struct {
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

// ChatListEntry is a Channel enriched with the derived counters the chat
// list needs. Entries are recomputed wholesale on every chat-list refresh.
type ChatListEntry struct {
	Channel
	Total  int64
	Unread int64
	Last   *MessagePreview
}
