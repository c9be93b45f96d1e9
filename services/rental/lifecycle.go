package rental

import (
	"context"
	"fmt"
	"time"

	"shelfspace/config"
	"shelfspace/models"
	"shelfspace/utils"

	"go.uber.org/zap"
)

// GetByID returns a reservation the actor is allowed to see. Store owners
// never see requests parked at or rejected by the admin gate.
func (s *DefaultRentalService) GetByID(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.IsAdmin():
		return r, nil
	case actor.IsBrandOwner() && r.BrandID == actor.ProfileID:
		return r, nil
	case actor.IsStoreOwner() && r.StoreID == actor.ProfileID:
		if r.Status == models.StatusPendingAdminApproval || r.RejectedBy == models.RejectedByAdmin {
			return nil, ErrForbidden
		}
		return r, nil
	}
	return nil, ErrForbidden
}

func (s *DefaultRentalService) ListForStore(ctx context.Context, storeID string) ([]models.Reservation, error) {
	return s.Repo.FindVisibleToStore(ctx, storeID)
}

func (s *DefaultRentalService) ListForBrand(ctx context.Context, brandID string) ([]models.Reservation, error) {
	return s.Repo.FindByBrand(ctx, brandID)
}

// OwnerAccept moves a pending request to payment_pending and atomically
// rejects every rival still pending on the same shelf. First accepted
// wins the shelf; from any reader's perspective there is no moment where
// the winner and a pending rival coexist.
func (s *DefaultRentalService) OwnerAccept(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStoreOwner() || r.StoreID != actor.ProfileID {
		return nil, ErrForbidden
	}
	if r.Status != models.StatusPending {
		return nil, &InvalidStateError{Current: r.Status, Attempted: "accept request"}
	}

	release, err := utils.ObtainLock(ctx, shelfLockKey(r.ShelfID), shelfLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize shelf access: %w", err)
	}
	defer release()

	matched, rivals, err := s.Repo.TransitionWithCascade(ctx, r.ID, r.ShelfID,
		[]string{models.StatusPending}, models.StatusPaymentPending, nil)
	if err != nil {
		return nil, err
	}
	if !matched {
		// A racing transition won; re-read for the accurate error.
		current, gerr := s.Repo.GetByID(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		return nil, &InvalidStateError{Current: current.Status, Attempted: "accept request"}
	}
	r.Status = models.StatusPaymentPending
	s.invalidateShelfCache(ctx, r.ShelfID)

	effects := acceptanceEffects(r)
	effects.Merge(cascadeEffects(rivals))
	s.applyEffects(ctx, effects)

	s.logger().Info("reservation accepted",
		zap.String("reservationId", r.ID),
		zap.String("shelfId", r.ShelfID),
		zap.Int("cascadedRejections", len(rivals)))
	return r, nil
}

// OwnerReject moves a pending request to rejected and archives its thread.
func (s *DefaultRentalService) OwnerReject(ctx context.Context, actor models.Actor, id string, reason string) (*models.Reservation, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStoreOwner() || r.StoreID != actor.ProfileID {
		return nil, ErrForbidden
	}
	if r.Status != models.StatusPending {
		return nil, &InvalidStateError{Current: r.Status, Attempted: "reject request"}
	}
	if reason == "" {
		return nil, newValidationError("a rejection reason is required")
	}

	matched, err := s.Repo.UpdateStatusIfCurrent(ctx, r.ID,
		[]string{models.StatusPending}, models.StatusRejected,
		map[string]interface{}{
			"rejectedBy":   models.RejectedByStore,
			"rejectReason": reason,
		})
	if err != nil {
		return nil, err
	}
	if !matched {
		current, gerr := s.Repo.GetByID(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		return nil, &InvalidStateError{Current: current.Status, Attempted: "reject request"}
	}
	r.Status = models.StatusRejected
	r.RejectedBy = models.RejectedByStore
	r.RejectReason = reason
	s.invalidateShelfCache(ctx, r.ShelfID)

	s.applyEffects(ctx, rejectionEffects(r, reason, true))
	return r, nil
}

// Cancel lets the requester withdraw while still pending. Once payment is
// pending or later, withdrawal must go through clearance.
func (s *DefaultRentalService) Cancel(ctx context.Context, actor models.Actor, id string) error {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsBrandOwner() || r.BrandID != actor.ProfileID {
		return ErrForbidden
	}
	if r.Status != models.StatusPending && r.Status != models.StatusPendingAdminApproval {
		return &InvalidStateError{Current: r.Status, Attempted: "cancel request"}
	}

	matched, err := s.Repo.UpdateStatusIfCurrent(ctx, r.ID,
		[]string{models.StatusPending, models.StatusPendingAdminApproval},
		models.StatusCancelled, nil)
	if err != nil {
		return err
	}
	if !matched {
		current, gerr := s.Repo.GetByID(ctx, id)
		if gerr != nil {
			return gerr
		}
		return &InvalidStateError{Current: current.Status, Attempted: "cancel request"}
	}
	s.invalidateShelfCache(ctx, r.ShelfID)

	if r.ThreadID != "" {
		s.applyEffects(ctx, models.Effects{ArchiveThreads: []string{r.ThreadID}})
	}
	return nil
}

// ExpireStale sweeps requests left too long in pending or payment_pending
// into expired. Safe to run any number of times; already-expired requests
// simply no longer match.
func (s *DefaultRentalService) ExpireStale(ctx context.Context) (int, error) {
	now := time.Now()
	expired := 0

	pendingCutoff := now.Add(-time.Duration(config.AppConfig.PendingExpiryHours) * time.Hour)
	paymentCutoff := now.Add(-time.Duration(config.AppConfig.PaymentExpiryHours) * time.Hour)

	sweep := func(statuses []string, cutoff time.Time) error {
		stale, err := s.Repo.FindStale(ctx, statuses, cutoff)
		if err != nil {
			return err
		}
		for i := range stale {
			r := &stale[i]
			matched, err := s.Repo.UpdateStatusIfCurrent(ctx, r.ID, statuses, models.StatusExpired, nil)
			if err != nil {
				s.logger().Sugar().Warnf("failed to expire reservation %s: %v", r.ID, err)
				continue
			}
			if matched {
				expired++
				s.invalidateShelfCache(ctx, r.ShelfID)
				if r.ThreadID != "" {
					s.applyEffects(ctx, models.Effects{ArchiveThreads: []string{r.ThreadID}})
				}
			}
		}
		return nil
	}

	if err := sweep([]string{models.StatusPending}, pendingCutoff); err != nil {
		return expired, err
	}
	if err := sweep([]string{models.StatusPaymentPending}, paymentCutoff); err != nil {
		return expired, err
	}

	if expired > 0 {
		s.logger().Info("expired stale reservations", zap.Int("count", expired))
	}
	return expired, nil
}
