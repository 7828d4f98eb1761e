package model

// Speaker identifies who produced a conversation entry.
type Speaker string

const (
	SpeakerUser      Speaker = "USER"
	SpeakerAssistant Speaker = "ASSISTANT"
)

// Message is one entry of a conversation.
type Message struct {
	Speaker Speaker
	Text    string
}

// ConversationLog is an append-only record of one interactive session.
// It is not safe for concurrent use; each session owns its log.
type ConversationLog struct {
	messages []Message
}

// Append adds an entry to the end of the log.
func (l *ConversationLog) Append(speaker Speaker, text string) {
	l.messages = append(l.messages, Message{Speaker: speaker, Text: text})
}

// Len returns the number of entries.
func (l *ConversationLog) Len() int { return len(l.messages) }

// Messages returns a copy of all entries in order.
func (l *ConversationLog) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Last returns a copy of the most recent n entries.
func (l *ConversationLog) Last(n int) []Message {
	if n <= 0 {
		return nil
	}
	start := len(l.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(l.messages)-start)
	copy(out, l.messages[start:])
	return out
}
