package ports

import (
	"context"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// MessageRepository defines persistence for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListForUser returns every message userID sent or received, newest first.
	ListForUser(ctx context.Context, userID string) ([]*domain.Message, error)
	// ListBetween returns the messages exchanged by a and b, oldest first.
	ListBetween(ctx context.Context, a, b string) ([]*domain.Message, error)
	MarkRead(ctx context.Context, id string) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context, receiverID string) (int64, error)
}
