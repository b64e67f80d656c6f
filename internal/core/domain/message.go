package domain

import "time"

// Participant is one side of a conversation.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Conversation is a two-party message thread.
type Conversation struct {
	ID           string         `json:"id"`
	Participants [2]Participant `json:"participants"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Includes reports whether accountID is one of the participants.
func (c *Conversation) Includes(accountID string) bool {
	return c.Participants[0].ID == accountID || c.Participants[1].ID == accountID
}

// Counterpart returns the participant that is not accountID.
func (c *Conversation) Counterpart(accountID string) Participant {
	if c.Participants[0].ID == accountID {
		return c.Participants[1]
	}
	return c.Participants[0]
}

// Message is a single entry in a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	Read           bool      `json:"read"`
}

// ConversationSummary is a conversation as seen from one participant.
type ConversationSummary struct {
	ID              string      `json:"id"`
	Participant     Participant `json:"participant"`
	LastMessage     string      `json:"last_message"`
	LastMessageTime time.Time   `json:"last_message_time"`
	UnreadCount     int         `json:"unread_count"`
}
