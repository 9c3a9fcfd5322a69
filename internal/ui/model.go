// Package ui renders the three-panel dashboard and routes key input and
// poller events through a single update loop.
package ui

import (
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"chatdash/internal/config"
	"chatdash/internal/models"
	"chatdash/internal/poller"
	"chatdash/internal/reconcile"
	"chatdash/internal/state"
)

type panel int

const (
	panelChats panel = iota
	panelThread
	panelRequirements
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayAssist
	overlaySettings
	overlayHelp
)

type inputTarget int

const (
	inputMessage inputTarget = iota
	inputRequirement
)

type assistState struct {
	loading bool
	reply   string
	err     error
}

type settingsState struct {
	models    []string
	cursor    int
	loading   bool
	loadErr   error
	themeName string
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	store  *state.Store
	remote Remote
	logger *slog.Logger

	timeout time.Duration
	limit   int

	width  int
	height int

	focus      panel
	chatCursor int
	msgCursor  int // -1 follows the newest message
	reqCursor  int

	typing      bool
	input       string
	inputTarget inputTarget

	overlay  overlayKind
	assist   assistState
	settings settingsState

	online bool
	status string
}

// New builds the dashboard model.
func New(store *state.Store, remote Remote, cfg config.Config, logger *slog.Logger) Model {
	return Model{
		store:     store,
		remote:    remote,
		logger:    logger,
		timeout:   cfg.RequestTimeout,
		limit:     cfg.MessageLimit,
		width:     100,
		height:    30,
		msgCursor: -1,
		status:    "tab: switch panel  enter: open  i: write  ?: help",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case poller.StatusEvent:
		m.store.SetOnline(msg.Online)
		m.online = msg.Online
		return m, nil

	case poller.ChatListEvent:
		entries := reconcile.BuildChatList(
			msg.Channels, msg.Counts, msg.Last,
			m.store.Settings(), m.store.ActiveChat(),
		)
		m.store.SetChats(entries)
		m.chatCursor = clamp(m.chatCursor, len(entries))
		return m, nil

	case poller.ThreadPageEvent:
		return m.applyThreadPage(msg.ChannelID, msg.Generation, msg.Page), nil

	case poller.RequirementsEvent:
		groups := reconcile.GroupRequirements(msg.Requirements)
		m.store.SetGroups(groups)
		m.reqCursor = clamp(m.reqCursor, len(groups))
		return m, nil

	case threadLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("thread load failed", "chat", msg.chat, "err", msg.err)
			m.status = "failed to load messages"
			return m, nil
		}
		thread := reconcile.NewThread(msg.page)
		// Full load jumps to the tail, but only if it was applied; a
		// stale load must not move the cursor either.
		if m.store.SetThread(msg.chat, msg.generation, thread.Messages, thread.LastID) {
			m.msgCursor = -1
		}
		return m, nil

	case reloadTickMsg:
		chat, generation := m.store.Current()
		if chat != msg.chat {
			return m, nil
		}
		return m, m.loadThreadCmd(chat, generation)

	case opDoneMsg:
		if msg.err != nil {
			m.logger.Warn("operation failed", "op", msg.op, "err", msg.err)
			m.status = "failed: " + msg.op
		}
		return m, nil

	case assistReplyMsg:
		m.assist.loading = false
		m.assist.reply = msg.reply
		m.assist.err = msg.err
		return m, nil

	case modelsMsg:
		m.settings.loading = false
		m.settings.loadErr = msg.err
		// A dead model server leaves the picker empty rather than failing
		// the overlay.
		m.settings.models = msg.names
		m.settings.cursor = 0
		for i, name := range msg.names {
			if name == m.store.Settings().AIModel {
				m.settings.cursor = i
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) applyThreadPage(chat int64, generation uint64, page []models.Message) Model {
	current := reconcile.Thread{Messages: m.store.Messages(), LastID: m.store.LastMsgID()}
	result := reconcile.ApplyPoll(current, m.store.MyUserID(), page)
	if !result.Changed {
		return m
	}
	// Incremental updates keep the scroll position: a cursor parked in
	// history stays where it is, only a tail-following view tracks the
	// new tail.
	if m.store.SetThread(chat, generation, result.Thread.Messages, result.Thread.LastID) && m.msgCursor != -1 {
		m.msgCursor = clampCursor(m.msgCursor, len(result.Thread.Messages))
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay != overlayNone {
		return m.handleOverlayKey(msg)
	}
	if m.typing {
		return m.handleTypingKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % 3
		return m, nil

	case "?":
		m.overlay = overlayHelp
		return m, nil

	case "up", "k":
		return m.moveCursor(-1), nil
	case "down", "j":
		return m.moveCursor(1), nil

	case "enter":
		if m.focus == panelChats {
			return m.openChatUnderCursor()
		}
		if m.focus == panelRequirements {
			m.store.ToggleCollapsed(m.reqCursor)
		}
		return m, nil

	case "i":
		m.typing = true
		m.inputTarget = inputMessage
		m.input = ""
		return m, nil

	case "a":
		if m.focus == panelRequirements {
			m.typing = true
			m.inputTarget = inputRequirement
			m.input = ""
		}
		return m, nil

	case "p":
		return m.togglePinUnderCursor()

	case "e":
		if m.focus == panelChats {
			chats := m.store.Chats()
			if m.chatCursor < len(chats) {
				ch := chats[m.chatCursor]
				m.status = "disabling " + ch.Name
				if !ch.Active {
					m.status = "enabling " + ch.Name
				}
				return m, m.toggleChannelCmd(ch.ID, !ch.Active)
			}
		}
		return m, nil

	case "x":
		if m.focus == panelRequirements {
			return m.toggleRequirementStatus()
		}
		if m.focus == panelThread {
			if id, ok := m.messageUnderCursor(); ok {
				m.store.ToggleSelected(id)
			}
		}
		return m, nil

	case "d":
		if m.focus == panelThread {
			ids := m.store.SelectedIDs()
			if len(ids) > 0 {
				m.status = "deleting messages"
				return m, m.deleteMessagesCmd(ids)
			}
		}
		if m.focus == panelRequirements {
			if group, ok := m.groupUnderCursor(); ok {
				return m, m.deleteRequirementCmd(group.Main.ID)
			}
		}
		return m, nil

	case "r":
		settings := m.store.MarkAllRead()
		m.status = "marked all read"
		return m, m.saveSettingsCmd(settings)

	case "g":
		if m.store.ActiveChat() != 0 {
			m.overlay = overlayAssist
			m.assist = assistState{loading: true}
			return m, m.assistCmd(m.threadTail(10), m.store.Settings().AIPrompt, m.store.Settings().AIModel)
		}
		return m, nil

	case "s":
		m.overlay = overlaySettings
		m.settings = settingsState{loading: true, themeName: m.store.Settings().Theme}
		return m, m.localModelsCmd()

	case "t":
		return m.toggleTheme()
	}

	return m, nil
}

func (m Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.typing = false
		m.input = ""
		return m, nil

	case "enter":
		content := strings.TrimSpace(m.input)
		m.typing = false
		m.input = ""
		if content == "" {
			return m, nil
		}
		if m.inputTarget == inputRequirement {
			m.status = "adding requirement"
			return m, m.createRequirementCmd(content)
		}
		return m.sendMessage(content)

	case "backspace":
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	case " ", "space":
		m.input += " "
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		}
		return m, nil
	}
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayHelp:
		if msg.String() == "esc" || msg.String() == "q" {
			m.overlay = overlayNone
		}
		return m, nil

	case overlayAssist:
		switch msg.String() {
		case "esc":
			m.overlay = overlayNone
			return m, nil
		case "enter":
			if !m.assist.loading && m.assist.err == nil && m.assist.reply != "" {
				m.overlay = overlayNone
				m.typing = true
				m.inputTarget = inputMessage
				m.input = m.assist.reply
			}
			return m, nil
		}
		return m, nil

	case overlaySettings:
		switch msg.String() {
		case "esc":
			m.overlay = overlayNone
			return m, nil
		case "up", "k":
			if m.settings.cursor > 0 {
				m.settings.cursor--
			}
			return m, nil
		case "down", "j":
			if m.settings.cursor < len(m.settings.models)-1 {
				m.settings.cursor++
			}
			return m, nil
		case "t":
			if m.settings.themeName == "light" {
				m.settings.themeName = "dark"
			} else {
				m.settings.themeName = "light"
			}
			return m, nil
		case "enter":
			m.overlay = overlayNone
			settings := m.store.UpdateSettings(func(s *models.Settings) {
				if len(m.settings.models) > 0 {
					s.AIModel = m.settings.models[m.settings.cursor]
				}
				s.Theme = m.settings.themeName
			})
			m.status = "settings saved"
			return m, m.saveSettingsCmd(settings)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) sendMessage(content string) (tea.Model, tea.Cmd) {
	chat := m.store.ActiveChat()
	if chat == 0 {
		m.status = "open a chat first"
		return m, nil
	}
	optimistic := reconcile.OptimisticMessage(chat, m.store.MyUserID(), content, time.Now())
	m.store.AppendOptimistic(optimistic)
	m.msgCursor = -1
	return m, tea.Batch(m.sendMessageCmd(chat, content), forcedReloadCmd(chat))
}

func (m Model) openChatUnderCursor() (tea.Model, tea.Cmd) {
	chats := m.store.Chats()
	if m.chatCursor >= len(chats) {
		return m, nil
	}
	id := chats[m.chatCursor].ID

	generation, settings, changed := m.store.SelectChat(id)
	if !changed {
		return m, nil
	}
	m.focus = panelThread
	m.msgCursor = -1
	return m, tea.Batch(
		m.saveSettingsCmd(settings),
		m.loadThreadCmd(id, generation),
	)
}

func (m Model) togglePinUnderCursor() (tea.Model, tea.Cmd) {
	switch m.focus {
	case panelChats:
		chats := m.store.Chats()
		if m.chatCursor < len(chats) {
			entry := chats[m.chatCursor]
			return m, m.pinChannelCmd(entry.ID, !entry.Pinned)
		}
	case panelRequirements:
		if group, ok := m.groupUnderCursor(); ok {
			return m, m.pinRequirementCmd(group.Main.ID, !group.Main.Pinned)
		}
	}
	return m, nil
}

func (m Model) toggleRequirementStatus() (tea.Model, tea.Cmd) {
	group, ok := m.groupUnderCursor()
	if !ok {
		return m, nil
	}
	status := models.StatusDone
	if group.Main.Status == models.StatusDone {
		status = models.StatusPending
	}
	return m, m.setRequirementStatusCmd(group.Main.ID, status)
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	settings := m.store.UpdateSettings(func(s *models.Settings) {
		if s.Theme == "light" {
			s.Theme = "dark"
		} else {
			s.Theme = "light"
		}
	})
	return m, m.saveSettingsCmd(settings)
}

func (m Model) moveCursor(delta int) Model {
	switch m.focus {
	case panelChats:
		m.chatCursor = clampCursor(m.chatCursor+delta, len(m.store.Chats()))
	case panelThread:
		msgs := m.store.Messages()
		switch {
		case m.msgCursor == -1 && delta < 0 && len(msgs) > 0:
			// First step up leaves tail-following mode on the tail itself.
			m.msgCursor = len(msgs) - 1
		case m.msgCursor != -1:
			m.msgCursor = clampCursor(m.msgCursor+delta, len(msgs))
			if m.msgCursor == len(msgs)-1 && delta > 0 {
				m.msgCursor = -1 // back to following the tail
			}
		}
		if m.msgCursor != -1 && msgs[m.msgCursor].HasImage {
			m.status = "media: " + m.remote.ImageURL(msgs[m.msgCursor].ID)
		}
	case panelRequirements:
		m.reqCursor = clampCursor(m.reqCursor+delta, len(m.store.Groups()))
	}
	return m
}

func (m Model) messageUnderCursor() (int64, bool) {
	msgs := m.store.Messages()
	if len(msgs) == 0 {
		return 0, false
	}
	idx := m.msgCursor
	if idx == -1 {
		idx = len(msgs) - 1
	}
	if idx < 0 || idx >= len(msgs) {
		return 0, false
	}
	return msgs[idx].ID, true
}

func (m Model) groupUnderCursor() (models.RequirementGroup, bool) {
	groups := m.store.Groups()
	if m.reqCursor < 0 || m.reqCursor >= len(groups) {
		return models.RequirementGroup{}, false
	}
	return groups[m.reqCursor], true
}

// threadTail returns the text of the last n displayed messages, oldest
// first, as AI context.
func (m Model) threadTail(n int) []string {
	msgs := m.store.Messages()
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	tail := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		tail = append(tail, msg.Content)
	}
	return tail
}

func clamp(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
