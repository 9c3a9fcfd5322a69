package ui

import "github.com/charmbracelet/lipgloss"

// Theme bundles the palette for one color scheme.
type Theme struct {
	Name string

	Border       lipgloss.Color
	BorderFocus  lipgloss.Color
	Text         lipgloss.Color
	Dim          lipgloss.Color
	Accent       lipgloss.Color
	Unread       lipgloss.Color
	Outgoing     lipgloss.Color
	Incoming     lipgloss.Color
	Done         lipgloss.Color
	Pending      lipgloss.Color
	OnlineColor  lipgloss.Color
	OfflineColor lipgloss.Color
}

// DarkTheme is the default scheme.
func DarkTheme() Theme {
	return Theme{
		Name:         "dark",
		Border:       lipgloss.Color("240"),
		BorderFocus:  lipgloss.Color("63"),
		Text:         lipgloss.Color("252"),
		Dim:          lipgloss.Color("243"),
		Accent:       lipgloss.Color("63"),
		Unread:       lipgloss.Color("203"),
		Outgoing:     lipgloss.Color("33"),
		Incoming:     lipgloss.Color("252"),
		Done:         lipgloss.Color("28"),
		Pending:      lipgloss.Color("214"),
		OnlineColor:  lipgloss.Color("40"),
		OfflineColor: lipgloss.Color("196"),
	}
}

// LightTheme is the alternate scheme.
func LightTheme() Theme {
	return Theme{
		Name:         "light",
		Border:       lipgloss.Color("250"),
		BorderFocus:  lipgloss.Color("27"),
		Text:         lipgloss.Color("235"),
		Dim:          lipgloss.Color("245"),
		Accent:       lipgloss.Color("27"),
		Unread:       lipgloss.Color("160"),
		Outgoing:     lipgloss.Color("25"),
		Incoming:     lipgloss.Color("235"),
		Done:         lipgloss.Color("22"),
		Pending:      lipgloss.Color("130"),
		OnlineColor:  lipgloss.Color("28"),
		OfflineColor: lipgloss.Color("124"),
	}
}

// ThemeByName maps a persisted theme name to a Theme, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

func (t Theme) panel(focused bool) lipgloss.Style {
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func (t Theme) title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

func (t Theme) dim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Dim)
}

func (t Theme) text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text)
}

func (t Theme) badge() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Unread)
}

func (t Theme) selected() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Reverse(true)
}

func (t Theme) overlay() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2)
}
