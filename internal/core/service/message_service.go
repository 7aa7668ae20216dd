package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewMessageService(messages ports.MessageRepository, users ports.UserRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, logger: logger, now: time.Now}
}

// Send stores a message from the caller to receiverID.
func (s *MessageService) Send(ctx context.Context, caller domain.Identity, receiverID, content string) (*domain.Message, error) {
	if receiverID == "" {
		return nil, domain.NewValidationError("receiver_id", "Receiver is required")
	}
	if receiverID == caller.ID {
		return nil, domain.NewValidationError("receiver_id", "Cannot send a message to yourself")
	}
	content, err := domain.ValidateMessageContent(content)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	now := s.now().UTC()
	msg, err := s.messages.Create(ctx, &domain.Message{
		Content:    content,
		SenderID:   caller.ID,
		ReceiverID: receiverID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("message_id", msg.ID).Str("sender_id", caller.ID).Str("receiver_id", receiverID).Msg("message sent")
	return msg, nil
}

func (s *MessageService) Conversations(ctx context.Context, caller domain.Identity) ([]domain.Conversation, error) {
	msgs, err := s.messages.ListForUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return domain.GroupConversations(caller.ID, msgs), nil
}

func (s *MessageService) Conversation(ctx context.Context, caller domain.Identity, otherID string) ([]*domain.Message, error) {
	return s.messages.ListBetween(ctx, caller.ID, otherID)
}

// MarkRead flags a message as read. Only its receiver may do so.
func (s *MessageService) MarkRead(ctx context.Context, caller domain.Identity, id string) (*domain.Message, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.ReceiverID != caller.ID {
		return nil, domain.ErrNotOwner
	}
	if msg.Read {
		return msg, nil
	}
	return s.messages.MarkRead(ctx, id)
}

// Delete removes a message. Only its sender may do so.
func (s *MessageService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if msg.SenderID != caller.ID {
		return domain.ErrNotOwner
	}
	return s.messages.Delete(ctx, id)
}

func (s *MessageService) UnreadCount(ctx context.Context, caller domain.Identity) (int64, error) {
	return s.messages.CountUnread(ctx, caller.ID)
}
