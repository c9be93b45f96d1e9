package rental

import (
	"context"
	"fmt"
	"time"

	"shelfspace/models"

	"go.uber.org/zap"
)

// applyEffects executes the side-effect list of a committed transition.
// Failures are logged and left to the dispatcher's retry path; the
// transition itself has already committed and must not be rolled back.
func (s *DefaultRentalService) applyEffects(ctx context.Context, effects models.Effects) {
	for _, intent := range effects.Notifications {
		if s.Notifier == nil {
			continue
		}
		if err := s.Notifier.Dispatch(ctx, intent); err != nil {
			s.logger().Warn("notification dispatch failed",
				zap.String("kind", intent.Kind),
				zap.String("recipient", intent.RecipientID),
				zap.Error(err))
		}
	}
	for _, post := range effects.ThreadPosts {
		if s.Threads == nil || post.ThreadID == "" {
			continue
		}
		if err := s.Threads.PostSystemNotice(ctx, post.ThreadID, post.MessageType, post.Text); err != nil {
			s.logger().Warn("thread post failed",
				zap.String("threadId", post.ThreadID),
				zap.Error(err))
		}
	}
	for _, threadID := range effects.ArchiveThreads {
		if s.Threads == nil || threadID == "" {
			continue
		}
		if err := s.Threads.Archive(ctx, threadID); err != nil {
			s.logger().Warn("thread archive failed",
				zap.String("threadId", threadID),
				zap.Error(err))
		}
	}
}

func formatWindow(startMs, endMs int64) string {
	const layout = "2006-01-02"
	return fmt.Sprintf("%s to %s",
		time.UnixMilli(startMs).UTC().Format(layout),
		time.UnixMilli(endMs).UTC().Format(layout))
}

func newRequestEffects(r *models.Reservation) models.Effects {
	return models.Effects{
		Notifications: []models.NotificationIntent{{
			Kind:          models.IntentNotifyOwnerOfNewRequest,
			RecipientID:   r.StoreID,
			RecipientRole: models.RoleStoreOwner,
			Title:         "New shelf rental request",
			Body:          fmt.Sprintf("%s requested %s for %s", r.BrandName, r.ShelfName, formatWindow(r.StartDate, r.EndDate)),
			Data: map[string]string{
				"reservationId": r.ID,
				"shelfId":       r.ShelfID,
				"brandName":     r.BrandName,
			},
		}},
		ThreadPosts: []models.ThreadPostIntent{{
			ThreadID:    r.ThreadID,
			MessageType: models.MessageTypeRentalRequest,
			Text:        fmt.Sprintf("Rental request for %s, %s", r.ShelfName, formatWindow(r.StartDate, r.EndDate)),
		}},
	}
}

func acceptanceEffects(r *models.Reservation) models.Effects {
	return models.Effects{
		Notifications: []models.NotificationIntent{{
			Kind:          models.IntentNotifyOwnerOfAcceptance,
			RecipientID:   r.BrandID,
			RecipientRole: models.RoleBrandOwner,
			Title:         "Rental request accepted",
			Body:          fmt.Sprintf("%s accepted your request for %s", r.StoreName, r.ShelfName),
			Data: map[string]string{
				"reservationId": r.ID,
				"shelfId":       r.ShelfID,
				"storeName":     r.StoreName,
			},
		}},
		ThreadPosts: []models.ThreadPostIntent{{
			ThreadID:    r.ThreadID,
			MessageType: models.MessageTypeRentalAccepted,
			Text:        fmt.Sprintf("Rental request for %s accepted", r.ShelfName),
		}},
	}
}

func rejectionEffects(r *models.Reservation, reason string, archive bool) models.Effects {
	effects := models.Effects{
		Notifications: []models.NotificationIntent{{
			Kind:          models.IntentNotifyRequesterOfRejection,
			RecipientID:   r.BrandID,
			RecipientRole: models.RoleBrandOwner,
			Title:         "Rental request rejected",
			Body:          fmt.Sprintf("Your request for %s was rejected: %s", r.ShelfName, reason),
			Data: map[string]string{
				"reservationId": r.ID,
				"shelfId":       r.ShelfID,
				"reason":        reason,
			},
		}},
		ThreadPosts: []models.ThreadPostIntent{{
			ThreadID:    r.ThreadID,
			MessageType: models.MessageTypeRentalRejected,
			Text:        fmt.Sprintf("Rental request for %s rejected", r.ShelfName),
		}},
	}
	if archive && r.ThreadID != "" {
		effects.ArchiveThreads = []string{r.ThreadID}
	}
	return effects
}

// cascadeEffects builds rejection effects for every rival auto-rejected by
// an accept or activation.
func cascadeEffects(rivals []models.Reservation) models.Effects {
	var effects models.Effects
	for i := range rivals {
		effects.Merge(rejectionEffects(&rivals[i], rivals[i].RejectReason, true))
	}
	return effects
}
