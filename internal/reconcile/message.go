package reconcile

import (
	"time"

	"chatdash/internal/models"
)

// Thread is a reconciled message sequence in chronological order.
type Thread struct {
	Messages []models.Message
	LastID   int64
}

// PollResult reports whether a poll introduced new content.
type PollResult struct {
	Thread  Thread
	Changed bool
}

// NewThread reverses a newest-first page into display order and records
// the tail message id.
func NewThread(page []models.Message) Thread {
	msgs := reverse(page)
	var lastID int64
	if len(msgs) > 0 {
		lastID = msgs[len(msgs)-1].ID
	}
	return Thread{Messages: msgs, LastID: lastID}
}

// ApplyPoll decides what an incremental poll does to the current thread.
// A page no longer than what is displayed counts as no new data. A longer
// page whose tail is the local user's message with the already-remembered
// id is the server echo of an optimistic send and is suppressed. Anything
// else replaces the thread.
func ApplyPoll(current Thread, myUserID int64, page []models.Message) PollResult {
	fresh := reverse(page)
	if len(fresh) <= len(current.Messages) {
		return PollResult{Thread: current}
	}

	tail := fresh[len(fresh)-1]
	if tail.Mine(myUserID) && tail.ID == current.LastID {
		return PollResult{Thread: current}
	}

	return PollResult{
		Thread:  Thread{Messages: fresh, LastID: tail.ID},
		Changed: true,
	}
}

// OptimisticMessage builds the locally appended placeholder for an
// outgoing send: epoch-millisecond id, local timestamp, outgoing flag.
func OptimisticMessage(channelID, myUserID int64, content string, now time.Time) models.Message {
	return models.Message{
		ID:         now.UnixMilli(),
		ChannelID:  channelID,
		SenderID:   myUserID,
		SenderName: "Me",
		Content:    content,
		CreatedAt:  now.Format(time.RFC3339),
		IsOutgoing: true,
	}
}

func reverse(page []models.Message) []models.Message {
	out := make([]models.Message, len(page))
	for i, m := range page {
		out[len(page)-1-i] = m
	}
	return out
}
