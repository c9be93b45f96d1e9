package rental

import (
	"context"
	"fmt"
	"time"

	"shelfspace/config"
	"shelfspace/models"
	"shelfspace/utils"
)

const shelfLockTTL = 10 * time.Second

func shelfLockKey(shelfID string) string {
	return "rental:lock:shelf:" + shelfID
}

func snapshotItems(items []models.LineItemInput) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Category:  it.Category,
		})
	}
	return out
}

// Submit creates a reservation for a shelf, or updates the brand's own
// in-flight request for the same shelf in place. The calendar check and
// the write are serialized per shelf so two racing submissions cannot both
// observe a free window.
func (s *DefaultRentalService) Submit(ctx context.Context, actor models.Actor, in models.SubmitRentalInput) (*models.Reservation, error) {
	if !actor.IsBrandOwner() {
		return nil, ErrForbidden
	}
	if in.StartDate >= in.EndDate {
		return nil, newValidationError("startDate must be before endDate")
	}
	if len(in.Items) == 0 {
		return nil, newValidationError("at least one line item is required")
	}

	shelf, err := s.Shelves.GetByID(ctx, in.ShelfID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve shelf: %w", err)
	}

	release, err := utils.ObtainLock(ctx, shelfLockKey(shelf.ID), shelfLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize shelf access: %w", err)
	}
	defer release()

	// A brand holds at most one non-terminal request per shelf; a resubmit
	// edits it rather than duplicating.
	existing, err := s.Repo.FindPendingByBrandAndShelf(ctx, actor.ProfileID, shelf.ID)
	if err != nil {
		return nil, err
	}

	excludeID := ""
	if existing != nil {
		excludeID = existing.ID
	}
	free, err := s.IsWindowFree(ctx, shelf.ID, in.StartDate, in.EndDate, excludeID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, &ConflictError{
			ShelfID:      shelf.ID,
			BlockedUntil: s.blockedUntil(ctx, shelf.ID, in.StartDate, in.EndDate, excludeID),
		}
	}

	if existing != nil {
		existing.StartDate = in.StartDate
		existing.EndDate = in.EndDate
		existing.Items = snapshotItems(in.Items)
		existing.TotalAmount = TotalAmount(existing.BasePrice, in.StartDate, in.EndDate)
		if err := s.Repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.invalidateShelfCache(ctx, shelf.ID)
		s.applyEffects(ctx, models.Effects{ThreadPosts: []models.ThreadPostIntent{{
			ThreadID:    existing.ThreadID,
			MessageType: models.MessageTypeText,
			Text:        fmt.Sprintf("Rental request updated: %s", formatWindow(in.StartDate, in.EndDate)),
		}}})
		return existing, nil
	}

	initialStatus := models.StatusPending
	if config.AppConfig.AdminGateEnabled {
		initialStatus = models.StatusPendingAdminApproval
	}

	r := &models.Reservation{
		ShelfID:   shelf.ID,
		ShelfName: shelf.Name,
		StoreID:   shelf.StoreID,
		StoreName: shelf.StoreName,
		BrandID:   actor.ProfileID,
		BrandName: in.BrandName,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Items:     snapshotItems(in.Items),
		BasePrice: shelf.MonthlyPrice,
		TaxRate:   config.AppConfig.SalesTaxRate,
		Status:    initialStatus,
		Commissions: []models.Commission{
			{Type: models.CommissionPlatform, Rate: config.AppConfig.PlatformCommission},
			{Type: models.CommissionStoreOwner, Rate: config.AppConfig.StoreOwnerCommission},
		},
	}
	r.TotalAmount = TotalAmount(r.BasePrice, r.StartDate, r.EndDate)

	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.invalidateShelfCache(ctx, shelf.ID)

	if s.Threads != nil {
		threadID, err := s.Threads.EnsureThread(ctx, r.ID, r.StoreID, r.BrandID)
		if err != nil {
			s.logger().Sugar().Warnf("failed to create thread for reservation %s: %v", r.ID, err)
		} else {
			r.ThreadID = threadID
			if err := s.Repo.Update(ctx, r); err != nil {
				s.logger().Sugar().Warnf("failed to link thread to reservation %s: %v", r.ID, err)
			}
		}
	}

	// Behind the admin gate the owner learns about the request only once
	// the admin approves it.
	if r.Status == models.StatusPending {
		s.applyEffects(ctx, newRequestEffects(r))
	} else {
		s.applyEffects(ctx, models.Effects{ThreadPosts: []models.ThreadPostIntent{{
			ThreadID:    r.ThreadID,
			MessageType: models.MessageTypeRentalRequest,
			Text:        fmt.Sprintf("Rental request for %s, %s", r.ShelfName, formatWindow(r.StartDate, r.EndDate)),
		}}})
	}

	return r, nil
}

// Update edits a pending reservation's window and items. Legal only from
// pending; the new window is re-validated against the calendar excluding
// the reservation itself.
func (s *DefaultRentalService) Update(ctx context.Context, actor models.Actor, id string, in models.UpdateRentalInput) (*models.Reservation, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsBrandOwner() || r.BrandID != actor.ProfileID {
		return nil, ErrForbidden
	}
	if r.Status != models.StatusPending {
		return nil, &InvalidStateError{Current: r.Status, Attempted: "update request"}
	}
	if in.StartDate >= in.EndDate {
		return nil, newValidationError("startDate must be before endDate")
	}

	release, err := utils.ObtainLock(ctx, shelfLockKey(r.ShelfID), shelfLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize shelf access: %w", err)
	}
	defer release()

	free, err := s.IsWindowFree(ctx, r.ShelfID, in.StartDate, in.EndDate, r.ID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, &ConflictError{
			ShelfID:      r.ShelfID,
			BlockedUntil: s.blockedUntil(ctx, r.ShelfID, in.StartDate, in.EndDate, r.ID),
		}
	}

	r.StartDate = in.StartDate
	r.EndDate = in.EndDate
	if len(in.Items) > 0 {
		r.Items = snapshotItems(in.Items)
	}
	r.TotalAmount = TotalAmount(r.BasePrice, r.StartDate, r.EndDate)

	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	s.invalidateShelfCache(ctx, r.ShelfID)

	s.applyEffects(ctx, models.Effects{ThreadPosts: []models.ThreadPostIntent{{
		ThreadID:    r.ThreadID,
		MessageType: models.MessageTypeText,
		Text:        fmt.Sprintf("Rental request updated: %s", formatWindow(r.StartDate, r.EndDate)),
	}}})
	return r, nil
}
