package messaging

import (
	"context"
	"fmt"

	threadRepo "shelfspace/database/repository/thread"
	"shelfspace/models"
)

// DefaultThreadService implements ThreadService over the thread store.
type DefaultThreadService struct {
	Repo threadRepo.ThreadRepository
}

func NewDefaultThreadService(repo threadRepo.ThreadRepository) *DefaultThreadService {
	return &DefaultThreadService{Repo: repo}
}

func (s *DefaultThreadService) EnsureThread(ctx context.Context, reservationID, storeID, brandID string) (string, error) {
	t, err := s.Repo.EnsureThread(ctx, reservationID, storeID, brandID)
	if err != nil {
		return "", fmt.Errorf("failed to ensure thread: %w", err)
	}
	return t.ID, nil
}

func (s *DefaultThreadService) PostSystemNotice(ctx context.Context, threadID, messageType, text string) error {
	msg := &models.ThreadMessage{
		ThreadID:    threadID,
		MessageType: messageType,
		Text:        text,
		System:      true,
	}
	if err := s.Repo.AppendMessage(ctx, msg); err != nil {
		return fmt.Errorf("failed to post system notice: %w", err)
	}
	return nil
}

func (s *DefaultThreadService) Archive(ctx context.Context, threadID string) error {
	if err := s.Repo.Archive(ctx, threadID); err != nil {
		return fmt.Errorf("failed to archive thread: %w", err)
	}
	return nil
}
