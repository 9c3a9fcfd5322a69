// Package state owns the client's shared UI state. All mutation goes
// through Store methods; reconcilers stay pure and pollers never touch
// fields directly.
package state

import (
	"sync"

	"chatdash/internal/models"
)

// Store holds everything the three panels render. It is safe for use from
// the UI loop and the poller goroutines.
type Store struct {
	mu sync.RWMutex

	settings models.Settings
	online   bool
	myUserID int64

	// generation increments on every chat selection; poll results tagged
	// with an older generation are stale and must be discarded.
	activeChat int64
	generation uint64

	chats     []models.ChatListEntry
	messages  []models.Message
	lastMsgID int64

	selected  map[int64]struct{}
	groups    []models.RequirementGroup
	collapsed map[int]struct{}
}

// New builds a Store seeded with the given settings.
func New(settings models.Settings) *Store {
	return &Store{
		settings:  settings,
		selected:  make(map[int64]struct{}),
		collapsed: make(map[int]struct{}),
	}
}

// Settings returns a deep copy of the current settings blob.
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySettings(s.settings)
}

// SetSettings replaces the settings blob.
func (s *Store) SetSettings(settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = copySettings(settings)
}

// UpdateSettings applies a mutation and returns the resulting snapshot for
// persistence.
func (s *Store) UpdateSettings(fn func(*models.Settings)) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.settings)
	return copySettings(s.settings)
}

// Online reports the last known connectivity state.
func (s *Store) Online() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// SetOnline records connectivity.
func (s *Store) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

// MyUserID returns the local account id, zero when unknown.
func (s *Store) MyUserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.myUserID
}

// SetMyUserID records the local account id.
func (s *Store) SetMyUserID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.myUserID = id
}

// Current returns the active chat id and selection generation together.
func (s *Store) Current() (chat int64, generation uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeChat, s.generation
}

// ActiveChat returns the active chat id, zero when none is open.
func (s *Store) ActiveChat() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeChat
}

// StillCurrent reports whether a poll tagged with chat/generation may be
// applied.
func (s *Store) StillCurrent(chat int64, generation uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeChat == chat && s.generation == generation
}

// SelectChat makes the chat current. Selecting the already-active chat is
// a no-op and reports changed=false. Otherwise the multi-select state is
// cleared, the last-message marker reset, the read position advanced to
// the entry's total and its unread forced to zero, all before the caller
// persists the returned settings snapshot or loads messages.
func (s *Store) SelectChat(id int64) (generation uint64, settings models.Settings, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeChat == id {
		return s.generation, models.Settings{}, false
	}

	s.activeChat = id
	s.generation++
	s.selected = make(map[int64]struct{})
	s.lastMsgID = 0
	s.messages = nil

	for i := range s.chats {
		if s.chats[i].ID == id {
			s.settings.SetRead(id, s.chats[i].Total)
			s.chats[i].Unread = 0
			break
		}
	}

	return s.generation, copySettings(s.settings), true
}

// SetChats replaces the chat list.
func (s *Store) SetChats(chats []models.ChatListEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = chats
}

// Chats returns a copy of the chat list.
func (s *Store) Chats() []models.ChatListEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatListEntry, len(s.chats))
	copy(out, s.chats)
	return out
}

// ChatEntry looks up a chat list entry by id.
func (s *Store) ChatEntry(id int64) (models.ChatListEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chats {
		if c.ID == id {
			return c, true
		}
	}
	return models.ChatListEntry{}, false
}

// SetThread commits a reconciled message thread if the poll that produced
// it still targets the current chat and generation. Returns whether the
// commit was applied.
func (s *Store) SetThread(chat int64, generation uint64, msgs []models.Message, lastID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeChat != chat || s.generation != generation {
		return false
	}
	s.messages = msgs
	s.lastMsgID = lastID
	return true
}

// Messages returns a copy of the displayed thread.
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// LastMsgID returns the remembered tail message id.
func (s *Store) LastMsgID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMsgID
}

// AppendOptimistic appends a locally-sent message awaiting server
// confirmation. The last-message marker is deliberately left alone so the
// next poll can still recognize the server echo.
func (s *Store) AppendOptimistic(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// MarkAllRead advances every visible chat's read position to its total and
// returns the settings snapshot to persist.
func (s *Store) MarkAllRead() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.chats {
		s.settings.SetRead(s.chats[i].ID, s.chats[i].Total)
		s.chats[i].Unread = 0
	}
	return copySettings(s.settings)
}

// ToggleSelected flips a message in the multi-select set.
func (s *Store) ToggleSelected(msgID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[msgID]; ok {
		delete(s.selected, msgID)
	} else {
		s.selected[msgID] = struct{}{}
	}
}

// SelectedIDs returns the multi-selected message ids.
func (s *Store) SelectedIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	return out
}

// SetGroups replaces the requirement groups.
func (s *Store) SetGroups(groups []models.RequirementGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
}

// Groups returns a copy of the requirement groups.
func (s *Store) Groups() []models.RequirementGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.RequirementGroup, len(s.groups))
	copy(out, s.groups)
	return out
}

// ToggleCollapsed flips a group's collapsed state. Collapse state is pure
// UI bookkeeping and is lost on restart.
func (s *Store) ToggleCollapsed(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collapsed[idx]; ok {
		delete(s.collapsed, idx)
	} else {
		s.collapsed[idx] = struct{}{}
	}
}

// IsCollapsed reports a group's collapsed state.
func (s *Store) IsCollapsed(idx int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collapsed[idx]
	return ok
}

func copySettings(s models.Settings) models.Settings {
	out := s
	out.Read = make(map[string]int64, len(s.Read))
	for k, v := range s.Read {
		out.Read[k] = v
	}
	out.RequirementChannels = append([]int64(nil), s.RequirementChannels...)
	return out
}
