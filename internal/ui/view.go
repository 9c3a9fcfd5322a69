package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"chatdash/internal/format"
	"chatdash/internal/models"
)

func (m Model) View() string {
	theme := ThemeByName(m.store.Settings().Theme)

	sidebarWidth := m.width / 4
	if sidebarWidth < 24 {
		sidebarWidth = 24
	}
	reqWidth := m.width / 4
	if reqWidth < 28 {
		reqWidth = 28
	}
	threadWidth := m.width - sidebarWidth - reqWidth - 6
	if threadWidth < 30 {
		threadWidth = 30
	}
	panelHeight := m.height - 4
	if panelHeight < 8 {
		panelHeight = 8
	}

	sidebar := theme.panel(m.focus == panelChats).
		Width(sidebarWidth).Height(panelHeight).
		Render(m.renderSidebar(theme, sidebarWidth, panelHeight))
	thread := theme.panel(m.focus == panelThread).
		Width(threadWidth).Height(panelHeight).
		Render(m.renderThread(theme, threadWidth, panelHeight))
	requirements := theme.panel(m.focus == panelRequirements).
		Width(reqWidth).Height(panelHeight).
		Render(m.renderRequirements(theme, reqWidth, panelHeight))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, thread, requirements)
	screen := lipgloss.JoinVertical(lipgloss.Left, body, m.renderInputLine(theme), m.renderStatusBar(theme))

	if m.overlay != overlayNone {
		return m.renderOverlay(theme, screen)
	}
	return screen
}

func (m Model) renderSidebar(theme Theme, width, height int) string {
	var b strings.Builder
	b.WriteString(theme.title().Render("Chats"))
	b.WriteString("\n")

	chats := m.store.Chats()
	if len(chats) == 0 {
		b.WriteString(theme.dim().Render("no active channels"))
		return b.String()
	}

	now := time.Now()
	active := m.store.ActiveChat()
	for i, entry := range chats {
		if i >= height-2 {
			break
		}
		line := m.renderChatLine(theme, entry, active, now, width-2)
		if m.focus == panelChats && i == m.chatCursor {
			line = theme.selected().Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderChatLine(theme Theme, entry models.ChatListEntry, active int64, now time.Time, width int) string {
	marker := "  "
	if entry.Pinned {
		marker = "* "
	}
	name := entry.Name
	if entry.ID == active {
		name = "> " + name
	}

	stamp := ""
	if entry.Last != nil {
		stamp = format.ChatTime(entry.Last.CreatedAt, now)
	}
	badge := ""
	if entry.Unread > 0 {
		badge = theme.badge().Render(fmt.Sprintf(" (%d)", entry.Unread))
	}

	head := truncateLine(marker+name, width-len(stamp)-1)
	line := head + badge
	if stamp != "" {
		line += " " + theme.dim().Render(stamp)
	}

	if entry.Last != nil {
		preview := truncateLine(entry.Last.SenderName+": "+entry.Last.Content, width)
		line += "\n" + theme.dim().Render("   "+preview)
	}
	return line
}

func (m Model) renderThread(theme Theme, width, height int) string {
	var b strings.Builder

	active := m.store.ActiveChat()
	title := "Messages"
	if entry, ok := m.store.ChatEntry(active); ok {
		title = entry.Name
	}
	b.WriteString(theme.title().Render(title))
	b.WriteString("\n")

	msgs := m.store.Messages()
	if active == 0 {
		b.WriteString(theme.dim().Render("select a chat"))
		return b.String()
	}
	if len(msgs) == 0 {
		b.WriteString(theme.dim().Render("no messages yet"))
		return b.String()
	}

	lines, cursorLine := m.threadLines(theme, msgs, width-2)

	// Stick to the bottom unless the cursor walked up into history, in
	// which case the window shifts to keep the cursor's message visible.
	visible := height - 2
	start := len(lines) - visible
	if start < 0 {
		start = 0
	}
	if m.msgCursor != -1 && cursorLine < start {
		start = cursorLine
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[start:end], "\n"))
	return b.String()
}

func (m Model) threadLines(theme Theme, msgs []models.Message, width int) ([]string, int) {
	selected := make(map[int64]bool)
	for _, id := range m.store.SelectedIDs() {
		selected[id] = true
	}

	now := time.Now()
	myID := m.store.MyUserID()
	var lines []string
	cursorLine := 0
	lastDay := ""
	for i, msg := range msgs {
		day := format.Day(msg.CreatedAt)
		if day != lastDay {
			lastDay = day
			divider := format.DateDivider(msg.CreatedAt, now)
			lines = append(lines, theme.dim().Render("── "+divider+" ──"))
		}

		style := theme.text().Foreground(theme.Incoming)
		author := msg.SenderName
		if msg.Mine(myID) {
			style = theme.text().Foreground(theme.Outgoing)
			author = "Me"
		}

		mark := " "
		if selected[msg.ID] {
			mark = "x"
		}
		if m.focus == panelThread && m.msgCursor == i {
			mark = ">"
		}

		header := fmt.Sprintf("%s %s  %s", mark, author, format.ClockTime(msg.CreatedAt))
		if i == m.msgCursor {
			cursorLine = len(lines)
		}
		lines = append(lines, style.Render(truncateLine(header, width)))
		body := msg.Content
		if msg.HasImage {
			body = "[image] " + body
		}
		for _, row := range wrap(body, width-3) {
			lines = append(lines, style.Render("   "+row))
		}
	}
	return lines, cursorLine
}

func (m Model) renderRequirements(theme Theme, width, height int) string {
	var b strings.Builder
	b.WriteString(theme.title().Render("Requirements"))
	b.WriteString("\n")

	groups := m.store.Groups()
	if len(groups) == 0 {
		b.WriteString(theme.dim().Render("nothing tracked"))
		return b.String()
	}

	row := 0
	for i, group := range groups {
		if row >= height-2 {
			break
		}
		line := m.renderRequirementLine(theme, group, i, width-2)
		b.WriteString(line)
		b.WriteString("\n")
		row += strings.Count(line, "\n") + 1
	}
	return b.String()
}

func (m Model) renderRequirementLine(theme Theme, group models.RequirementGroup, idx, width int) string {
	box := "[ ]"
	style := theme.text().Foreground(theme.Pending)
	if group.Main.Status == models.StatusDone {
		box = "[x]"
		style = theme.dim().Foreground(theme.Done).Strikethrough(true)
	}

	marker := " "
	if group.Main.Pinned {
		marker = "*"
	}

	fold := " "
	if len(group.Replies) > 0 {
		fold = "-"
		if m.store.IsCollapsed(idx) {
			fold = "+"
		}
	}

	line := truncateLine(fmt.Sprintf("%s%s %s %s", marker, fold, box, group.Main.Content), width)
	line = style.Render(line)
	if m.focus == panelRequirements && idx == m.reqCursor {
		line = theme.selected().Render(fmt.Sprintf("%s%s %s %s", marker, fold, box, truncateLine(group.Main.Content, width-7)))
	}

	if !m.store.IsCollapsed(idx) {
		for _, reply := range group.Replies {
			line += "\n" + theme.dim().Render(truncateLine("    • "+reply.Content, width))
		}
	}
	return line
}

func (m Model) renderInputLine(theme Theme) string {
	if !m.typing {
		return theme.dim().Render(" i to write, a to add a requirement")
	}
	prompt := "message"
	if m.inputTarget == inputRequirement {
		prompt = "requirement"
	}
	return theme.text().Render(fmt.Sprintf(" %s> %s█", prompt, m.input))
}

func (m Model) renderStatusBar(theme Theme) string {
	dot := theme.text().Foreground(theme.OnlineColor).Render("● online")
	if !m.online {
		dot = theme.text().Foreground(theme.OfflineColor).Render("● offline")
	}
	return " " + dot + "  " + theme.dim().Render(m.status)
}

func (m Model) renderOverlay(theme Theme, under string) string {
	var content string
	switch m.overlay {
	case overlayHelp:
		content = strings.Join([]string{
			theme.title().Render("Keys"),
			"tab        switch panel",
			"enter      open chat / fold group",
			"i          write a message",
			"a          add a requirement",
			"p          pin/unpin",
			"e          enable/disable channel",
			"x          toggle done / select message",
			"d          delete selected",
			"r          mark all read",
			"g          draft a reply",
			"s          settings",
			"t          toggle theme",
			"q          quit",
		}, "\n")

	case overlayAssist:
		switch {
		case m.assist.loading:
			content = theme.title().Render("Drafting reply") + "\n\nworking..."
		case m.assist.err != nil:
			content = theme.title().Render("Drafting reply") + "\n\n" +
				theme.dim().Render("assistant unavailable: "+m.assist.err.Error())
		default:
			content = theme.title().Render("Suggested reply") + "\n\n" +
				strings.Join(wrap(m.assist.reply, 60), "\n") +
				"\n\n" + theme.dim().Render("enter: use draft  esc: discard")
		}

	case overlaySettings:
		var b strings.Builder
		b.WriteString(theme.title().Render("Settings"))
		b.WriteString("\n\ntheme: " + m.settings.themeName + " (t to switch)\n\nmodel:\n")
		switch {
		case m.settings.loading:
			b.WriteString(theme.dim().Render("  loading models..."))
		case len(m.settings.models) == 0:
			b.WriteString(theme.dim().Render("  no local models found"))
		default:
			for i, name := range m.settings.models {
				cursor := "  "
				if i == m.settings.cursor {
					cursor = "> "
				}
				b.WriteString(cursor + name + "\n")
			}
		}
		b.WriteString("\n" + theme.dim().Render("enter: save  esc: cancel"))
		content = b.String()
	}

	box := theme.overlay().Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func truncateLine(s string, width int) string {
	if width <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func wrap(s string, width int) []string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
