// Package ui provides ephemeral status notifications for the terminal interface.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lyra-cli/lyra/style"
)

// NotificationLifetime is how long a notification stays on screen.
const NotificationLifetime = 3 * time.Second

// Model holds the notification currently shown, if any.
type Model struct {
	notification string
	generation   int
}

// NotificationMsg asks the model to show a notification.
type NotificationMsg string

// ClearNotificationMsg hides the notification it was scheduled for.
type ClearNotificationMsg struct {
	generation int
}

// Notify returns a tea.Cmd that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

func clearAfter(generation int) tea.Cmd {
	return tea.Tick(NotificationLifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{generation: generation}
	})
}

// Update processes notification messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.generation++
		return clearAfter(m.generation)
	case ClearNotificationMsg:
		// a newer notification has its own timer
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// Notification returns the text being shown.
func (m *Model) Notification() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
