package memory

import (
	"context"
	"sync"

	"github.com/gigboard/marketplace/internal/core/domain"
)

type MessageRepository struct {
	mu            sync.RWMutex
	conversations []domain.Conversation
	messages      map[string][]domain.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{messages: make(map[string][]domain.Message)}
}

func (r *MessageRepository) CreateConversation(_ context.Context, c *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conversations = append(r.conversations, *c)
	return nil
}

func (r *MessageRepository) FindConversation(_ context.Context, id string) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.conversations {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrConversationNotFound
}

func (r *MessageRepository) FindConversationBetween(_ context.Context, a, b string) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.conversations {
		if c.Includes(a) && c.Includes(b) {
			return &c, nil
		}
	}
	return nil, domain.ErrConversationNotFound
}

func (r *MessageRepository) ListConversations(_ context.Context, accountID string) ([]domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Conversation
	for _, c := range r.conversations {
		if c.Includes(accountID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MessageRepository) AppendMessage(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[m.ConversationID] = append(r.messages[m.ConversationID], *m)
	return nil
}

func (r *MessageRepository) ListMessages(_ context.Context, conversationID string) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.messages[conversationID]
	out := make([]domain.Message, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *MessageRepository) MarkRead(_ context.Context, conversationID, readerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.messages[conversationID]
	for i := range msgs {
		if msgs[i].SenderID != readerID {
			msgs[i].Read = true
		}
	}
	return nil
}
