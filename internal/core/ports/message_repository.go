package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// MessageRepository persists conversations and their messages.
type MessageRepository interface {
	CreateConversation(ctx context.Context, c *domain.Conversation) error
	FindConversation(ctx context.Context, id string) (*domain.Conversation, error)
	// FindConversationBetween returns domain.ErrConversationNotFound when the
	// two accounts have no thread yet.
	FindConversationBetween(ctx context.Context, a, b string) (*domain.Conversation, error)
	ListConversations(ctx context.Context, accountID string) ([]domain.Conversation, error)

	AppendMessage(ctx context.Context, m *domain.Message) error
	// ListMessages returns messages in delivery order.
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	// MarkRead flags every message in the conversation not sent by readerID.
	MarkRead(ctx context.Context, conversationID, readerID string) error
}
