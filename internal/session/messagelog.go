package session

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Message is one entry of the in-game message log.
type Message struct {
	Text  string
	Color tcell.Color
	Count int
}

// FullText returns the text with its repeat counter, e.g. "Orc attacks (x3)".
func (m Message) FullText() string {
	if m.Count > 1 {
		return fmt.Sprintf("%s (x%d)", m.Text, m.Count)
	}
	return m.Text
}

// MessageLog keeps the messages shown to the player, oldest first.
type MessageLog struct {
	messages []Message
}

// NewMessageLog creates an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// AddMessage appends text in the given color. A message identical to the
// previous one bumps that entry's counter instead of adding a new line.
func (l *MessageLog) AddMessage(text string, color tcell.Color) {
	if n := len(l.messages); n > 0 && l.messages[n-1].Text == text {
		l.messages[n-1].Count++
		return
	}
	l.messages = append(l.messages, Message{Text: text, Color: color, Count: 1})
}

// Messages returns a copy of the log, oldest first.
func (l *MessageLog) Messages() []Message {
	return append([]Message(nil), l.messages...)
}

// Len returns the number of entries.
func (l *MessageLog) Len() int {
	return len(l.messages)
}

// Last returns the newest entry, or false if the log is empty.
func (l *MessageLog) Last() (Message, bool) {
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}
