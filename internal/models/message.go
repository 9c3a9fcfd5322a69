package models

// Message represents a chat message. Timestamps stay in their ISO-8601
// wire form; display formatting parses them on demand.
type Message struct {
	ID          int64  `db:"id" json:"id"`
	ChannelID   int64  `db:"channel_id" json:"channel_id"`
	SenderID    int64  `db:"sender_id" json:"sender_id"`
	SenderName  string `db:"sender_name" json:"sender_name"`
	Content     string `db:"content" json:"content"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	IsOutgoing  bool   `db:"is_outgoing" json:"is_outgoing"`
	HasImage    bool   `db:"has_image" json:"has_image"`
	MediaType   string `db:"media_type" json:"media_type,omitempty"`
	ChannelName string `db:"channel_name" json:"channel_name,omitempty"`
}

// Mine reports whether the message is attributable to the local user.
func (m Message) Mine(myUserID int64) bool {
	return m.IsOutgoing || (myUserID != 0 && m.SenderID == myUserID)
}
