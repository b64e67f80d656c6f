package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

type messageService struct {
	repo ports.MessageRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewMessageService returns a MessageService implementation.
func NewMessageService(repo ports.MessageRepository, log zerolog.Logger) ports.MessageService {
	return &messageService{repo: repo, log: log, now: time.Now}
}

// StartConversation returns the existing thread between the two accounts or
// opens a new one.
func (s *messageService) StartConversation(ctx context.Context, from, to domain.Participant) (*domain.Conversation, error) {
	if from.ID == to.ID {
		return nil, fmt.Errorf("start conversation: %w", domain.ErrForbidden)
	}

	existing, err := s.repo.FindConversationBetween(ctx, from.ID, to.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrConversationNotFound) {
		return nil, fmt.Errorf("start conversation: %w", err)
	}

	conv := &domain.Conversation{
		ID:           uuid.NewString(),
		Participants: [2]domain.Participant{from, to},
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("start conversation: %w", err)
	}

	s.log.Info().Str("conversation_id", conv.ID).Str("from", from.ID).Str("to", to.ID).Msg("conversation started")
	return conv, nil
}

// Conversation returns the thread, or domain.ErrForbidden when viewerID is
// not a participant.
func (s *messageService) Conversation(ctx context.Context, conversationID, viewerID string) (*domain.Conversation, error) {
	conv, err := s.repo.FindConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Includes(viewerID) {
		return nil, domain.ErrForbidden
	}
	return conv, nil
}

// Deliver appends a message to its conversation. The sender must be a participant.
func (s *messageService) Deliver(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	conv, err := s.repo.FindConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("deliver: %w", err)
	}
	if !conv.Includes(in.SenderID) {
		return nil, fmt.Errorf("deliver: %w", domain.ErrForbidden)
	}

	msg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderID:       in.SenderID,
		SenderName:     in.SenderName,
		Content:        in.Content,
		Timestamp:      s.now().UTC(),
	}
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("deliver: append: %w", err)
	}

	s.log.Debug().Str("conversation_id", conv.ID).Str("message_id", msg.ID).Msg("message delivered")
	return msg, nil
}

// Conversations lists the viewer's threads, newest activity first. search
// filters on the other participant's name, case-insensitively.
func (s *messageService) Conversations(ctx context.Context, viewerID, search string) ([]domain.ConversationSummary, error) {
	convs, err := s.repo.ListConversations(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	term := strings.ToLower(search)
	out := make([]domain.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		other := c.Counterpart(viewerID)
		if term != "" && !strings.Contains(strings.ToLower(other.Name), term) {
			continue
		}

		msgs, err := s.repo.ListMessages(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list conversations: %w", err)
		}

		summary := domain.ConversationSummary{
			ID:              c.ID,
			Participant:     other,
			LastMessageTime: c.CreatedAt,
		}
		for _, m := range msgs {
			if m.SenderID != viewerID && !m.Read {
				summary.UnreadCount++
			}
		}
		if n := len(msgs); n > 0 {
			summary.LastMessage = msgs[n-1].Content
			summary.LastMessageTime = msgs[n-1].Timestamp
		}
		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTime.After(out[j].LastMessageTime)
	})
	return out, nil
}

// Messages returns the thread and marks the viewer's incoming messages read.
func (s *messageService) Messages(ctx context.Context, conversationID, viewerID string) ([]domain.Message, error) {
	if _, err := s.Conversation(ctx, conversationID, viewerID); err != nil {
		return nil, err
	}

	if err := s.repo.MarkRead(ctx, conversationID, viewerID); err != nil {
		s.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to mark messages read")
	}
	return s.repo.ListMessages(ctx, conversationID)
}
