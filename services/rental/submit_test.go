package rental

import (
	"context"
	"testing"
	"time"

	"shelfspace/config"
	"shelfspace/models"

	"github.com/stretchr/testify/assert"
)

func TestSubmitCreatesPendingReservation(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	r, err := h.svc.Submit(ctx, brandActor, submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.June, 1)))
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, r.Status)
	assert.Equal(t, "Corner Goods", r.StoreName)
	assert.Equal(t, "Window Shelf A", r.ShelfName)
	assert.Equal(t, 360.0, r.TotalAmount, "three periods at 120")
	assert.NotEmpty(t, r.ThreadID)

	// Commission snapshots are frozen at submit time.
	assert.Equal(t, 0.09, r.CommissionRate(models.CommissionPlatform))
	assert.Equal(t, 0.10, r.CommissionRate(models.CommissionStoreOwner))

	// Owner is notified of a directly-pending request.
	assert.Contains(t, h.notifier.kinds(), models.IntentNotifyOwnerOfNewRequest)
}

func TestSubmitBehindAdminGate(t *testing.T) {
	config.AppConfig.AdminGateEnabled = true
	defer func() { config.AppConfig.AdminGateEnabled = false }()

	h := newTestHarness()
	ctx := context.Background()

	r, err := h.svc.Submit(ctx, brandActor, submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.April, 1)))
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPendingAdminApproval, r.Status)

	// The owner must not hear about a gated request.
	assert.NotContains(t, h.notifier.kinds(), models.IntentNotifyOwnerOfNewRequest)
}

func TestSubmitRejectsConflictingWindow(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	first, err := h.svc.Submit(ctx, brandActor, submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.May, 1)))
	assert.NoError(t, err)

	_, err = h.svc.Submit(ctx, otherBrandActor, submitInput("shelf-1", ms(2026, time.April, 1), ms(2026, time.June, 1)))
	assert.True(t, IsConflict(err))

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.EndDate, conflict.BlockedUntil)
}

func TestSubmitValidation(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	in := submitInput("shelf-1", ms(2026, time.April, 1), ms(2026, time.March, 1))
	_, err := h.svc.Submit(ctx, brandActor, in)
	assert.True(t, IsValidation(err), "inverted window must be refused")

	in = submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.April, 1))
	in.Items = nil
	_, err = h.svc.Submit(ctx, brandActor, in)
	assert.True(t, IsValidation(err), "empty item list must be refused")

	_, err = h.svc.Submit(ctx, storeActor, submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.April, 1)))
	assert.ErrorIs(t, err, ErrForbidden, "only brand owners submit requests")
}

func TestResubmitUpdatesOwnRequestInPlace(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	first, err := h.svc.Submit(ctx, brandActor, submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.April, 1)))
	assert.NoError(t, err)

	// Same brand, same shelf, overlapping window: edits in place instead
	// of conflicting with itself.
	second, err := h.svc.Submit(ctx, brandActor, submitInput("shelf-1", ms(2026, time.March, 15), ms(2026, time.May, 15)))
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, ms(2026, time.March, 15), second.StartDate)

	all, err := h.repo.FindByBrand(ctx, brandActor.ProfileID)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateOnlyFromPending(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	r := activeReservation(t, h)
	_, err := h.svc.Update(ctx, brandActor, r.ID, models.UpdateRentalInput{
		StartDate: ms(2026, time.July, 1),
		EndDate:   ms(2026, time.August, 1),
	})
	assert.True(t, IsInvalidState(err))
}

func TestUpdateRevalidatesWindowExcludingSelf(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	r, err := h.svc.Submit(ctx, brandActor, submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.April, 1)))
	assert.NoError(t, err)

	// Extending its own window is fine even though it overlaps itself.
	updated, err := h.svc.Update(ctx, brandActor, r.ID, models.UpdateRentalInput{
		StartDate: ms(2026, time.March, 1),
		EndDate:   ms(2026, time.May, 1),
	})
	assert.NoError(t, err)
	assert.Equal(t, 240.0, updated.TotalAmount, "price reflects the new window")

	// But not into another brand's window.
	_, err = h.svc.Submit(ctx, otherBrandActor, submitInput("shelf-1", ms(2026, time.June, 1), ms(2026, time.July, 1)))
	assert.NoError(t, err)
	_, err = h.svc.Update(ctx, brandActor, r.ID, models.UpdateRentalInput{
		StartDate: ms(2026, time.March, 1),
		EndDate:   ms(2026, time.June, 15),
	})
	assert.True(t, IsConflict(err))
}
