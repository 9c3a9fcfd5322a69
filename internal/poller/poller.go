// Package poller drives the periodic refresh loops. Each target polls on
// its own ticker and delivers raw API payloads as events into the UI
// loop; nothing here mutates the store beyond reading what is current.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chatdash/internal/config"
	"chatdash/internal/models"
	"chatdash/internal/observability"
	"chatdash/internal/state"
)

// API is the slice of the remote client the pollers use.
type API interface {
	Status(ctx context.Context) (bool, error)
	Channels(ctx context.Context, activeOnly bool) ([]models.Channel, error)
	ChannelCounts(ctx context.Context) (map[int64]int64, error)
	LastMessages(ctx context.Context) (map[int64]models.MessagePreview, error)
	Messages(ctx context.Context, channelID int64, query string, limit int) ([]models.Message, error)
	Requirements(ctx context.Context) ([]models.Requirement, error)
}

// StatusEvent reports server connectivity.
type StatusEvent struct {
	Online bool
}

// ChatListEvent carries one chat-list refresh: channels, totals and
// last-message previews fetched together.
type ChatListEvent struct {
	Channels []models.Channel
	Counts   map[int64]int64
	Last     map[int64]models.MessagePreview
}

// ThreadPageEvent carries a newest-first message page for the chat that
// was active when the poll was issued. Consumers must still verify the
// tag against current state before committing.
type ThreadPageEvent struct {
	ChannelID  int64
	Generation uint64
	Page       []models.Message
}

// RequirementsEvent carries a requirements refresh.
type RequirementsEvent struct {
	Requirements []models.Requirement
}

// Poller runs the four refresh loops.
type Poller struct {
	api     API
	store   *state.Store
	send    func(any)
	logger  *slog.Logger
	timeout time.Duration
	limit   int

	statusEvery time.Duration
	chatsEvery  time.Duration
	msgsEvery   time.Duration
	reqsEvery   time.Duration
}

// New wires a Poller. send delivers events into the UI loop and must be
// safe to call from any goroutine.
func New(apiClient API, store *state.Store, send func(any), cfg config.Config, logger *slog.Logger) *Poller {
	return &Poller{
		api:         apiClient,
		store:       store,
		send:        send,
		logger:      logger,
		timeout:     cfg.RequestTimeout,
		limit:       cfg.MessageLimit,
		statusEvery: cfg.StatusInterval,
		chatsEvery:  cfg.ChatListInterval,
		msgsEvery:   cfg.MessageInterval,
		reqsEvery:   cfg.RequirementInterval,
	}
}

// Run blocks until ctx is cancelled. Every loop fires once immediately,
// then on its interval.
func (p *Poller) Run(ctx context.Context) {
	var wg sync.WaitGroup
	loops := []struct {
		every time.Duration
		fn    func(context.Context)
	}{
		{p.statusEvery, p.pollStatus},
		{p.chatsEvery, p.pollChatList},
		{p.msgsEvery, p.pollMessages},
		{p.reqsEvery, p.pollRequirements},
	}

	for _, l := range loops {
		wg.Add(1)
		go func(every time.Duration, fn func(context.Context)) {
			defer wg.Done()
			fn(ctx)
			ticker := time.NewTicker(every)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					fn(ctx)
				}
			}
		}(l.every, l.fn)
	}
	wg.Wait()
}

func (p *Poller) pollStatus(ctx context.Context) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	online, err := p.api.Status(callCtx)
	if err != nil {
		// Status failure is itself a signal: flip the indicator offline.
		p.logger.Warn("status check failed", "err", err)
		online = false
	}
	observability.RecordPollCycle("status")
	p.send(StatusEvent{Online: online})
}

func (p *Poller) pollChatList(ctx context.Context) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	channels, err := p.api.Channels(callCtx, true)
	if err != nil {
		p.logger.Warn("channel list poll failed", "err", err)
		return
	}
	counts, err := p.api.ChannelCounts(callCtx)
	if err != nil {
		p.logger.Warn("channel counts poll failed", "err", err)
		return
	}
	last, err := p.api.LastMessages(callCtx)
	if err != nil {
		p.logger.Warn("last messages poll failed", "err", err)
		return
	}

	observability.RecordPollCycle("chats")
	p.send(ChatListEvent{Channels: channels, Counts: counts, Last: last})
}

func (p *Poller) pollMessages(ctx context.Context) {
	chat, generation := p.store.Current()
	if chat == 0 {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	page, err := p.api.Messages(callCtx, chat, "", p.limit)
	if err != nil {
		p.logger.Warn("message poll failed", "chat", chat, "err", err)
		return
	}

	// The user may have navigated away while the fetch was in flight;
	// a stale page must be discarded, not applied.
	if !p.store.StillCurrent(chat, generation) {
		observability.RecordStaleDrop("messages")
		p.logger.Debug("dropping stale message poll", "chat", chat, "generation", generation)
		return
	}

	observability.RecordPollCycle("messages")
	p.send(ThreadPageEvent{ChannelID: chat, Generation: generation, Page: page})
}

func (p *Poller) pollRequirements(ctx context.Context) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	reqs, err := p.api.Requirements(callCtx)
	if err != nil {
		p.logger.Warn("requirements poll failed", "err", err)
		return
	}

	observability.RecordPollCycle("requirements")
	p.send(RequirementsEvent{Requirements: reqs})
}
