package rental

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"shelfspace/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Slugify lowercases the input and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(parts ...string) string {
	var b strings.Builder
	lastHyphen := true
	for _, part := range parts {
		for _, r := range strings.ToLower(part) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
				lastHyphen = false
			} else if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// uniqueSlug probes for an unclaimed slug, suffixing -2, -3, ... when the
// base is taken.
func (s *DefaultRentalService) uniqueSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "shelf"
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := s.Occupancy.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateOccupancyRecord materializes the live-shelf record for an active
// reservation. Exactly one record per reservation: replays return the
// existing record untouched, and a losing racer resolves to the winner's
// record instead of an error.
func (s *DefaultRentalService) CreateOccupancyRecord(ctx context.Context, reservationID string) (*models.OccupancyRecord, error) {
	if existing, err := s.Occupancy.GetByReservationID(ctx, reservationID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	r, err := s.Repo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r.Status != models.StatusActive {
		return nil, &InvalidStateError{Current: r.Status, Attempted: "create occupancy record"}
	}

	slug, err := s.uniqueSlug(ctx, Slugify(r.StoreName, r.ShelfName))
	if err != nil {
		return nil, err
	}

	rec := &models.OccupancyRecord{
		ID:            uuid.NewString(),
		ReservationID: r.ID,
		ShelfID:       r.ShelfID,
		StoreID:       r.StoreID,
		BrandID:       r.BrandID,
		Slug:          slug,
		Commissions:   append([]models.Commission(nil), r.Commissions...),
		Active:        true,
		ActivatedAt:   time.Now(),
	}
	if err := s.Occupancy.Create(ctx, rec); err != nil {
		// A concurrent creator may have beaten us to the unique index.
		if existing, gerr := s.Occupancy.GetByReservationID(ctx, reservationID); gerr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}

	s.logger().Info("occupancy record created",
		zap.String("reservationId", r.ID),
		zap.String("slug", slug))
	return rec, nil
}

// RecordSale applies counter bumps reported by the sales pipeline. Counters
// only ever grow; negative deltas are refused.
func (s *DefaultRentalService) RecordSale(ctx context.Context, occupancyID string, in models.RecordSaleInput) error {
	if in.Views < 0 || in.Orders < 0 || in.Revenue < 0 {
		return newValidationError("sale counters cannot decrease")
	}
	rec, err := s.Occupancy.GetByID(ctx, occupancyID)
	if err != nil {
		return err
	}
	if !rec.Active {
		return &InvalidStateError{Current: "deactivated", Attempted: "record sale"}
	}
	return s.Occupancy.IncrementCounters(ctx, occupancyID, in.Views, in.Orders, in.Revenue)
}

// EndOccupancy closes out an active rental: the reservation completes, the
// occupancy record deactivates, and the clearance chain opens at its first
// step.
func (s *DefaultRentalService) EndOccupancy(ctx context.Context, actor models.Actor, reservationID string) (*models.Reservation, error) {
	r, err := s.Repo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !(actor.IsStoreOwner() && r.StoreID == actor.ProfileID) {
		return nil, ErrForbidden
	}
	if r.Status != models.StatusActive {
		return nil, &InvalidStateError{Current: r.Status, Attempted: "end occupancy"}
	}

	now := time.Now()
	matched, err := s.Repo.UpdateStatusIfCurrent(ctx, r.ID,
		[]string{models.StatusActive}, models.StatusCompleted,
		map[string]interface{}{
			"clearance.status":    models.ClearancePendingInventoryCheck,
			"clearance.startedAt": now,
		})
	if err != nil {
		return nil, err
	}
	if !matched {
		current, gerr := s.Repo.GetByID(ctx, reservationID)
		if gerr != nil {
			return nil, gerr
		}
		return nil, &InvalidStateError{Current: current.Status, Attempted: "end occupancy"}
	}
	r.Status = models.StatusCompleted
	r.Clearance.Status = models.ClearancePendingInventoryCheck
	r.Clearance.StartedAt = &now
	s.invalidateShelfCache(ctx, r.ShelfID)

	if rec, err := s.Occupancy.GetByReservationID(ctx, r.ID); err != nil {
		s.logger().Warn("failed to load occupancy for deactivation",
			zap.String("reservationId", r.ID), zap.Error(err))
	} else if rec != nil && rec.Active {
		if err := s.Occupancy.Deactivate(ctx, rec.ID); err != nil {
			s.logger().Warn("failed to deactivate occupancy record",
				zap.String("occupancyId", rec.ID), zap.Error(err))
		}
	}

	s.logger().Info("occupancy ended", zap.String("reservationId", r.ID))
	return r, nil
}
