package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"chatdash/internal/api"
	"chatdash/internal/models"
)

// Remote is the slice of the API client the UI issues writes and on-demand
// reads through. Periodic reads belong to the poller.
type Remote interface {
	Messages(ctx context.Context, channelID int64, query string, limit int) ([]models.Message, error)
	SendMessage(ctx context.Context, channelID int64, content string) error
	DeleteMessage(ctx context.Context, id int64) error
	SaveSettings(ctx context.Context, s models.Settings) error
	PinChannel(ctx context.Context, id int64, pinned bool) error
	ToggleChannel(ctx context.Context, id int64, active bool) error
	ImageURL(messageID int64) string
	CreateRequirement(ctx context.Context, content string) error
	UpdateRequirement(ctx context.Context, id int64, upd api.RequirementUpdate) error
	DeleteRequirement(ctx context.Context, id int64) error
	AIAssist(ctx context.Context, messages []string, prompt, model string) (string, error)
	LocalModels(ctx context.Context) ([]string, error)
}

type threadLoadedMsg struct {
	chat       int64
	generation uint64
	page       []models.Message
	err        error
}

type opDoneMsg struct {
	op  string
	err error
}

type reloadTickMsg struct {
	chat int64
}

type assistReplyMsg struct {
	reply string
	err   error
}

type modelsMsg struct {
	names []string
	err   error
}

func (m Model) loadThreadCmd(chat int64, generation uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		page, err := m.remote.Messages(ctx, chat, "", m.limit)
		return threadLoadedMsg{chat: chat, generation: generation, page: page, err: err}
	}
}

func (m Model) sendMessageCmd(chat int64, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "send", err: m.remote.SendMessage(ctx, chat, content)}
	}
}

// forcedReloadCmd schedules the post-send refresh that picks up the server
// echo even between poll ticks.
func forcedReloadCmd(chat int64) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return reloadTickMsg{chat: chat}
	})
}

func (m Model) saveSettingsCmd(settings models.Settings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "save settings", err: m.remote.SaveSettings(ctx, settings)}
	}
}

func (m Model) pinChannelCmd(id int64, pinned bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "pin chat", err: m.remote.PinChannel(ctx, id, pinned)}
	}
}

func (m Model) toggleChannelCmd(id int64, active bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "toggle channel", err: m.remote.ToggleChannel(ctx, id, active)}
	}
}

func (m Model) deleteMessagesCmd(ids []int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		for _, id := range ids {
			if err := m.remote.DeleteMessage(ctx, id); err != nil {
				return opDoneMsg{op: "delete messages", err: err}
			}
		}
		return opDoneMsg{op: "delete messages"}
	}
}

func (m Model) createRequirementCmd(content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "create requirement", err: m.remote.CreateRequirement(ctx, content)}
	}
}

func (m Model) setRequirementStatusCmd(id int64, status string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "update requirement", err: m.remote.UpdateRequirement(ctx, id, api.RequirementUpdate{Status: &status})}
	}
}

func (m Model) pinRequirementCmd(id int64, pinned bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "pin requirement", err: m.remote.UpdateRequirement(ctx, id, api.RequirementUpdate{Pinned: &pinned})}
	}
}

func (m Model) deleteRequirementCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "delete requirement", err: m.remote.DeleteRequirement(ctx, id)}
	}
}

func (m Model) assistCmd(history []string, prompt, model string) tea.Cmd {
	return func() tea.Msg {
		// Draft generation can be slow on local models.
		ctx, cancel := context.WithTimeout(context.Background(), 4*m.timeout)
		defer cancel()
		reply, err := m.remote.AIAssist(ctx, history, prompt, model)
		return assistReplyMsg{reply: reply, err: err}
	}
}

func (m Model) localModelsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		names, err := m.remote.LocalModels(ctx)
		return modelsMsg{names: names, err: err}
	}
}
