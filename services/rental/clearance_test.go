package rental

import (
	"context"
	"testing"

	"shelfspace/models"

	"github.com/stretchr/testify/assert"
)

func completedReservation(t *testing.T, h *testHarness) *models.Reservation {
	t.Helper()
	ctx := context.Background()

	r := activeReservation(t, h)
	rec, err := h.occupancy.GetByReservationID(ctx, r.ID)
	assert.NoError(t, err)
	assert.NoError(t, h.svc.RecordSale(ctx, rec.ID, models.RecordSaleInput{Views: 200, Orders: 20, Revenue: 1000}))

	completed, err := h.svc.EndOccupancy(ctx, storeActor, r.ID)
	assert.NoError(t, err)
	return completed
}

func TestClearanceWalksTheFullChain(t *testing.T) {
	h := newTestHarness()
	r := completedReservation(t, h)

	final := advanceTo(t, h, r.ID, models.ClearanceClosed)
	assert.Equal(t, models.ClearanceClosed, final.Clearance.Status)
	assert.NotNil(t, final.Clearance.ClosedAt)
	assert.Equal(t, "receipt-1", final.Clearance.ReceiptRef)

	// Settlement from the frozen 9%/10% rates over 1000 in sales.
	s := final.Clearance.Settlement
	assert.NotNil(t, s)
	assert.Equal(t, 90.0, s.PlatformCommissionAmount)
	assert.Equal(t, 100.0, s.StorePayoutAmount)
	assert.Equal(t, 810.0, s.BrandTotalAmount)
	assert.True(t, s.Approved())
}

func TestClearanceCannotSkipSteps(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()
	r := completedReservation(t, h)

	// Straight to approval from the first step.
	_, err := h.svc.ApproveSettlement(ctx, adminActor, r.ID)
	assert.True(t, IsInvalidState(err))

	// Generic advance refuses the steps that have dedicated entry points.
	advanceTo(t, h, r.ID, models.ClearancePendingSettlement)
	_, err = h.svc.AdvanceClearance(ctx, adminActor, r.ID)
	assert.True(t, IsValidation(err), "approval must go through its own endpoint")
}

func TestClearanceReturnShippedRequiresShipment(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()
	r := completedReservation(t, h)

	_, err := h.svc.AdvanceClearance(ctx, adminActor, r.ID) // -> pending_return_shipment
	assert.NoError(t, err)

	_, err = h.svc.AdvanceClearance(ctx, adminActor, r.ID)
	assert.True(t, IsValidation(err), "cannot mark shipped with no shipment record")

	_, err = h.svc.AttachShipment(ctx, adminActor, r.ID, models.ShipmentInput{Carrier: "DHL", TrackingNo: "JD0001"})
	assert.NoError(t, err)
	advanced, err := h.svc.AdvanceClearance(ctx, adminActor, r.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ClearanceReturnShipped, advanced.Clearance.Status)
}

func TestClearanceAdminOnly(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()
	r := completedReservation(t, h)

	_, err := h.svc.AdvanceClearance(ctx, storeActor, r.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = h.svc.OverrideClearance(ctx, brandActor, r.ID, models.ClearanceOverrideInput{Status: models.ClearanceClosed, Reason: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOverrideClearanceRecordsAudit(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()
	r := completedReservation(t, h)

	_, err := h.svc.OverrideClearance(ctx, adminActor, r.ID, models.ClearanceOverrideInput{Status: models.ClearanceReturnReceived})
	assert.True(t, IsValidation(err), "override demands a reason")

	overridden, err := h.svc.OverrideClearance(ctx, adminActor, r.ID, models.ClearanceOverrideInput{
		Status: models.ClearanceReturnReceived,
		Reason: "goods returned in person",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.ClearanceReturnReceived, overridden.Clearance.Status)
	assert.Len(t, overridden.Clearance.Overrides, 1)

	audit := overridden.Clearance.Overrides[0]
	assert.Equal(t, adminActor.ProfileID, audit.ActorID)
	assert.Equal(t, models.ClearancePendingInventoryCheck, audit.FromStatus)
	assert.Equal(t, models.ClearanceReturnReceived, audit.ToStatus)
	assert.Equal(t, "goods returned in person", audit.Reason)
}

func TestClosedClearanceIsImmutable(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()
	r := completedReservation(t, h)
	advanceTo(t, h, r.ID, models.ClearanceClosed)

	_, err := h.svc.AdvanceClearance(ctx, adminActor, r.ID)
	assert.True(t, IsInvalidState(err))

	_, err = h.svc.OverrideClearance(ctx, adminActor, r.ID, models.ClearanceOverrideInput{
		Status: models.ClearancePendingSettlement,
		Reason: "reopen",
	})
	assert.True(t, IsInvalidState(err), "closed is terminal even for overrides")
}

func TestCompleteSettlementRequiresApprovalAndReceipt(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()
	r := completedReservation(t, h)
	advanceTo(t, h, r.ID, models.ClearanceSettlementApproved)

	_, err := h.svc.CompleteSettlementPayment(ctx, adminActor, r.ID, "")
	assert.True(t, IsValidation(err), "payout needs a receipt reference")

	done, err := h.svc.CompleteSettlementPayment(ctx, adminActor, r.ID, "rcpt-42")
	assert.NoError(t, err)
	assert.Equal(t, models.ClearancePaymentCompleted, done.Clearance.Status)
	assert.Equal(t, "rcpt-42", done.Clearance.ReceiptRef)
}

func TestSettlementUsesFrozenRates(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	r := completedReservation(t, h)
	// A later platform-wide rate change must not affect this reservation.
	stored, err := h.repo.GetByID(ctx, r.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.09, stored.CommissionRate(models.CommissionPlatform))

	final := advanceTo(t, h, r.ID, models.ClearancePendingSettlement)
	assert.Equal(t, 0.09, final.Clearance.Settlement.PlatformRate)
	assert.Equal(t, 0.10, final.Clearance.Settlement.StoreOwnerRate)
}
