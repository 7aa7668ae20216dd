package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

type noticeService struct {
	messages ports.MessageRepository
	log      zerolog.Logger
}

// NewNoticeService returns a NoticeService that delivers application notices
// as direct messages from the applicant to the job owner.
func NewNoticeService(messages ports.MessageRepository, log zerolog.Logger) ports.NoticeService {
	return &noticeService{messages: messages, log: log}
}

func (s *noticeService) Deliver(ctx context.Context, n ports.ApplicationNotice) error {
	if n.OwnerID == "" || n.ApplicantID == "" || n.OwnerID == n.ApplicantID {
		return fmt.Errorf("deliver notice: invalid participants for job %s", n.JobID)
	}

	name := n.Applicant
	if name == "" {
		name = "A candidate"
	}
	now := time.Now().UTC()
	msg, err := s.messages.Create(ctx, &domain.Message{
		Content:    fmt.Sprintf("%s applied to your job posting %q.", name, n.JobTitle),
		SenderID:   n.ApplicantID,
		ReceiverID: n.OwnerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("deliver notice: %w", err)
	}

	s.log.Info().
		Str("job_id", n.JobID).
		Str("owner_id", n.OwnerID).
		Str("message_id", msg.ID).
		Msg("application notice delivered")
	return nil
}
