package ports

import (
	"context"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// MessageService defines use-case operations for direct messages.
type MessageService interface {
	Send(ctx context.Context, caller domain.Identity, receiverID, content string) (*domain.Message, error)
	Conversations(ctx context.Context, caller domain.Identity) ([]domain.Conversation, error)
	Conversation(ctx context.Context, caller domain.Identity, otherID string) ([]*domain.Message, error)
	MarkRead(ctx context.Context, caller domain.Identity, id string) (*domain.Message, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
	UnreadCount(ctx context.Context, caller domain.Identity) (int64, error)
}
