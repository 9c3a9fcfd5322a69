package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Requirement statuses as stored by the server.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Requirement is a tracked task, either captured from a channel message or
// created by hand.
type Requirement struct {
	ID        int64  `db:"id" json:"id"`
	Title     string `db:"title" json:"title,omitempty"`
	Content   string `db:"content" json:"content"`
	Status    string `db:"status" json:"status"`
	Pinned    bool   `db:"pinned" json:"pinned"`
	CreatedAt string `db:"created_at" json:"created_at"`
	RawSource string `db:"source" json:"source,omitempty"`

	// Source is RawSource parsed once at ingestion.
	Source Source `db:"-" json:"-"`
}

// SourceKind classifies requirement provenance.
type SourceKind int

const (
	SourceManual SourceKind = iota
	SourceChannel
	SourceReply
)

// Source is the decoded provenance tag. The wire form is
// "channel:<chatID>:<msgID>" or "reply:<chatID>:<msgID>"; anything else,
// including a malformed tag, counts as a manual requirement.
type Source struct {
	Kind      SourceKind
	ChannelID int64
	MessageID int64
}

// ParseSource decodes a raw source tag.
func ParseSource(raw string) Source {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return Source{Kind: SourceManual}
	}

	var kind SourceKind
	switch parts[0] {
	case "channel":
		kind = SourceChannel
	case "reply":
		kind = SourceReply
	default:
		return Source{Kind: SourceManual}
	}

	chanID, err1 := strconv.ParseInt(parts[1], 10, 64)
	msgID, err2 := strconv.ParseInt(parts[2], 10, 64)
	if err1 != nil || err2 != nil {
		return Source{Kind: SourceManual}
	}

	return Source{Kind: kind, ChannelID: chanID, MessageID: msgID}
}

// GroupKey returns the grouping key for the requirement that carries this
// source. Manual requirements get a key derived from their own id so they
// never merge with anything.
func (s Source) GroupKey(reqID int64) string {
	if s.Kind == SourceManual {
		return fmt.Sprintf("manual:%d", reqID)
	}
	return fmt.Sprintf("%d:%d", s.ChannelID, s.MessageID)
}

// RequirementGroup clusters a main requirement with its reply records.
type RequirementGroup struct {
	Key     string
	Main    Requirement
	Replies []Requirement
}
