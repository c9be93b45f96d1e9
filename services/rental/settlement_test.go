package rental

import (
	"context"
	"testing"
	"time"

	"shelfspace/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeSettlementSplit(t *testing.T) {
	s := ComputeSettlement(1000, 0.09, 0.10, 0)

	assert.Equal(t, 1000.0, s.TotalSales)
	assert.Equal(t, 90.0, s.PlatformCommissionAmount)
	assert.Equal(t, 100.0, s.StorePayoutAmount)
	assert.Equal(t, 810.0, s.BrandTotalAmount)
}

func TestComputeSettlementNetsOutTax(t *testing.T) {
	// 1080 gross at 8% tax nets to 1000.
	s := ComputeSettlement(1080, 0.09, 0.10, 0.08)

	assert.Equal(t, 1080.0, s.TotalSalesWithTax)
	assert.Equal(t, 1000.0, s.TotalSales)
	assert.Equal(t, 90.0, s.PlatformCommissionAmount)
	assert.Equal(t, 100.0, s.StorePayoutAmount)
	assert.Equal(t, 810.0, s.BrandTotalAmount)
}

func TestComputeSettlementPartitionsExactly(t *testing.T) {
	// Awkward rates that would leak cents if every leg were multiplied
	// independently; the brand leg is a remainder so the three always sum
	// to net.
	cases := []struct {
		gross, platform, store, tax float64
	}{
		{333.33, 0.0725, 0.1133, 0},
		{1234.56, 0.09, 0.10, 0.0825},
		{0.01, 0.30, 0.10, 0},
		{99999.99, 0.15, 0.05, 0.2},
	}
	for _, c := range cases {
		s := ComputeSettlement(c.gross, c.platform, c.store, c.tax)
		sum := s.PlatformCommissionAmount + s.StorePayoutAmount + s.BrandTotalAmount
		assert.InDelta(t, s.TotalSales, sum, 0.0001,
			"gross=%v platform=%v store=%v tax=%v", c.gross, c.platform, c.store, c.tax)
	}
}

func TestComputeSettlementDeterministic(t *testing.T) {
	a := ComputeSettlement(4321.09, 0.09, 0.10, 0.0725)
	b := ComputeSettlement(4321.09, 0.09, 0.10, 0.0725)
	assert.Equal(t, a, b)
}

func TestComputeSettlementZeroSales(t *testing.T) {
	s := ComputeSettlement(0, 0.09, 0.10, 0)
	assert.Zero(t, s.PlatformCommissionAmount)
	assert.Zero(t, s.StorePayoutAmount)
	assert.Zero(t, s.BrandTotalAmount)
}

func TestRecomputeSettlementConsistent(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	r := activeReservation(t, h)
	rec, err := h.occupancy.GetByReservationID(ctx, r.ID)
	assert.NoError(t, err)
	assert.NoError(t, h.svc.RecordSale(ctx, rec.ID, models.RecordSaleInput{Views: 500, Orders: 40, Revenue: 2500}))

	_, err = h.svc.EndOccupancy(ctx, storeActor, r.ID)
	assert.NoError(t, err)
	advanceTo(t, h, r.ID, models.ClearancePendingSettlement)

	settlement, err := h.svc.RecomputeSettlement(ctx, r.ID)
	assert.NoError(t, err)
	assert.NotNil(t, settlement)
}

func TestRecomputeSettlementBeforeComputation(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	r := activeReservation(t, h)
	_, err := h.svc.RecomputeSettlement(ctx, r.ID)
	assert.True(t, IsInvalidState(err))
}

// activeReservation drives a fresh submission through payment to active.
func activeReservation(t *testing.T, h *testHarness) *models.Reservation {
	t.Helper()
	ctx := context.Background()

	r, err := h.svc.Submit(ctx, brandActor, submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.June, 1)))
	assert.NoError(t, err)
	_, err = h.svc.OwnerAccept(ctx, storeActor, r.ID)
	assert.NoError(t, err)
	r, err = h.svc.ConfirmPayment(ctx, models.PaymentConfirmedEvent{ReservationID: r.ID, AmountConfirmed: r.TotalAmount})
	assert.NoError(t, err)
	return r
}

// advanceTo walks clearance forward to the target status, recording sales
// before settlement computation so amounts are non-zero.
func advanceTo(t *testing.T, h *testHarness, id string, target string) *models.Reservation {
	t.Helper()
	ctx := context.Background()

	rec, err := h.occupancy.GetByReservationID(ctx, id)
	assert.NoError(t, err)
	if rec != nil && rec.Revenue == 0 && rec.Active {
		assert.NoError(t, h.svc.RecordSale(ctx, rec.ID, models.RecordSaleInput{Views: 100, Orders: 10, Revenue: 1000}))
	}

	for {
		r, err := h.repo.GetByID(ctx, id)
		assert.NoError(t, err)
		if r.Clearance.Status == target {
			return r
		}
		switch nextClearanceStatus(r.Clearance.Status) {
		case models.ClearanceReturnShipped:
			if len(r.Clearance.Shipments) == 0 {
				_, err := h.svc.AttachShipment(ctx, adminActor, id, models.ShipmentInput{Carrier: "UPS", TrackingNo: "1Z999"})
				assert.NoError(t, err)
			}
			_, err = h.svc.AdvanceClearance(ctx, adminActor, id)
		case models.ClearanceSettlementApproved:
			_, err = h.svc.ApproveSettlement(ctx, adminActor, id)
		case models.ClearancePaymentCompleted:
			_, err = h.svc.CompleteSettlementPayment(ctx, adminActor, id, "receipt-1")
		default:
			_, err = h.svc.AdvanceClearance(ctx, adminActor, id)
		}
		assert.NoError(t, err)
	}
}
