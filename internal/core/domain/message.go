package domain

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const maxMessageLength = 5000

// Message is a direct message between two users.
type Message struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Counterpart returns the other participant from userID's point of view.
func (m *Message) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// ValidateMessageContent trims content and enforces length limits.
func ValidateMessageContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", NewValidationError("content", "Message content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return "", NewValidationError("content", "Message content must be at most 5000 characters")
	}
	return content, nil
}

// Conversation groups the messages exchanged with one counterpart.
type Conversation struct {
	UserID      string     `json:"user_id"`
	Messages    []*Message `json:"messages"`
	UnreadCount int        `json:"unread_count"`
	LastMessage time.Time  `json:"last_message_at"`
}

// GroupConversations buckets messages by counterpart of userID. Messages
// inside a conversation are ordered oldest first; conversations are ordered
// by their newest message, newest first.
func GroupConversations(userID string, msgs []*Message) []Conversation {
	byUser := make(map[string]*Conversation)
	order := make([]string, 0)
	for _, m := range msgs {
		other := m.Counterpart(userID)
		conv, ok := byUser[other]
		if !ok {
			conv = &Conversation{UserID: other}
			byUser[other] = conv
			order = append(order, other)
		}
		conv.Messages = append(conv.Messages, m)
		if m.ReceiverID == userID && !m.Read {
			conv.UnreadCount++
		}
		if m.CreatedAt.After(conv.LastMessage) {
			conv.LastMessage = m.CreatedAt
		}
	}

	out := make([]Conversation, 0, len(order))
	for _, id := range order {
		conv := byUser[id]
		sort.SliceStable(conv.Messages, func(i, j int) bool {
			return conv.Messages[i].CreatedAt.Before(conv.Messages[j].CreatedAt)
		})
		out = append(out, *conv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessage.After(out[j].LastMessage)
	})
	return out
}
