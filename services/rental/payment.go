package rental

import (
	"context"
	"fmt"
	"math"

	"shelfspace/models"
	"shelfspace/utils"

	"go.uber.org/zap"
)

func reservationLockKey(id string) string {
	return "rental:lock:rsv:" + id
}

// ConfirmPayment applies an external payment-confirmed event. The provider
// redelivers events at will, so the whole operation is idempotent: replays
// against an already-active reservation with its occupancy in place return
// success without touching anything. Payment straight from pending is an
// instant accept and triggers the same rival cascade an owner acceptance
// would.
func (s *DefaultRentalService) ConfirmPayment(ctx context.Context, ev models.PaymentConfirmedEvent) (*models.Reservation, error) {
	if ev.ReservationID == "" {
		return nil, newValidationError("payment event carries no reservation id")
	}

	release, err := utils.ObtainLock(ctx, reservationLockKey(ev.ReservationID), shelfLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payment confirmation: %w", err)
	}
	defer release()

	r, err := s.Repo.GetByID(ctx, ev.ReservationID)
	if err != nil {
		return nil, err
	}

	if r.Status == models.StatusActive {
		occ, err := s.Occupancy.GetByReservationID(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if occ != nil {
			// Duplicate delivery against a fully materialized reservation.
			return r, nil
		}
		// A previous confirmation activated the reservation but crashed
		// before the occupancy write. Finish the missing half only.
		s.logger().Warn("active reservation without occupancy record, repairing",
			zap.String("reservationId", r.ID))
		if _, err := s.CreateOccupancyRecord(ctx, r.ID); err != nil {
			return nil, err
		}
		return r, nil
	}

	if r.Status != models.StatusPending && r.Status != models.StatusPaymentPending {
		return nil, &InvalidStateError{Current: r.Status, Attempted: "confirm payment"}
	}

	if ev.AmountConfirmed > 0 && math.Abs(ev.AmountConfirmed-r.TotalAmount) > 0.01 {
		s.logger().Warn("confirmed amount differs from reservation total",
			zap.String("reservationId", r.ID),
			zap.Float64("confirmed", ev.AmountConfirmed),
			zap.Float64("expected", r.TotalAmount))
	}

	wasPending := r.Status == models.StatusPending

	matched, rivals, err := s.Repo.TransitionWithCascade(ctx, r.ID, r.ShelfID,
		[]string{models.StatusPending, models.StatusPaymentPending}, models.StatusActive,
		map[string]interface{}{"amountConfirmed": ev.AmountConfirmed})
	if err != nil {
		return nil, err
	}
	if !matched {
		// Lost a race. If the rival confirmation already activated us this
		// is still a success; anything else is a dead end.
		current, gerr := s.Repo.GetByID(ctx, r.ID)
		if gerr != nil {
			return nil, gerr
		}
		if current.Status == models.StatusActive {
			return current, nil
		}
		return nil, &InvalidStateError{Current: current.Status, Attempted: "confirm payment"}
	}
	r.Status = models.StatusActive
	r.AmountConfirmed = ev.AmountConfirmed
	s.invalidateShelfCache(ctx, r.ShelfID)

	if _, err := s.CreateOccupancyRecord(ctx, r.ID); err != nil {
		// Reservation is active but occupancy is missing; the next
		// redelivery repairs it through the branch above.
		s.logger().Error("occupancy creation failed after activation",
			zap.String("reservationId", r.ID), zap.Error(err))
		return nil, err
	}

	effects := models.Effects{}
	if wasPending {
		// Owner never accepted; the payment itself decided the shelf.
		effects.Merge(acceptanceEffects(r))
	}
	effects.Merge(cascadeEffects(rivals))
	s.applyEffects(ctx, effects)

	s.logger().Info("reservation activated by payment",
		zap.String("reservationId", r.ID),
		zap.String("shelfId", r.ShelfID),
		zap.Bool("instantBook", wasPending),
		zap.Int("cascadedRejections", len(rivals)))
	return r, nil
}
