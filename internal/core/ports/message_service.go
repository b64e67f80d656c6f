package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// SendMessageInput is a message waiting for delivery.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	SenderName     string
	Content        string
}

// MessageService defines the messaging use cases.
type MessageService interface {
	StartConversation(ctx context.Context, from, to domain.Participant) (*domain.Conversation, error)
	// Conversation returns the thread if viewerID takes part in it.
	Conversation(ctx context.Context, conversationID, viewerID string) (*domain.Conversation, error)
	// Deliver validates and appends a message. It is what dispatcher workers call.
	Deliver(ctx context.Context, in SendMessageInput) (*domain.Message, error)
	Conversations(ctx context.Context, viewerID, search string) ([]domain.ConversationSummary, error)
	Messages(ctx context.Context, conversationID, viewerID string) ([]domain.Message, error)
}
