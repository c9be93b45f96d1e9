package rental

import (
	"context"
	"time"

	"shelfspace/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func clearanceIndex(status string) int {
	for i, s := range models.ClearanceChain {
		if s == status {
			return i
		}
	}
	return -1
}

// nextClearanceStatus returns the step after current in the chain, or ""
// when current is terminal or unknown.
func nextClearanceStatus(current string) string {
	i := clearanceIndex(current)
	if i < 0 || i+1 >= len(models.ClearanceChain) {
		return ""
	}
	return models.ClearanceChain[i+1]
}

func (s *DefaultRentalService) loadForClearance(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != models.StatusCompleted {
		return nil, &InvalidStateError{Current: r.Status, Attempted: "advance clearance"}
	}
	return r, nil
}

// AdvanceClearance moves the clearance sub-state one step forward. Steps
// with their own preconditions enforce them here; the settlement approval
// and payout steps have dedicated entry points and cannot be taken through
// the generic advance.
func (s *DefaultRentalService) AdvanceClearance(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error) {
	r, err := s.loadForClearance(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	current := r.Clearance.Status
	next := nextClearanceStatus(current)
	if next == "" {
		return nil, &InvalidStateError{Current: current, Attempted: "advance clearance"}
	}

	switch next {
	case models.ClearanceReturnShipped:
		if len(r.Clearance.Shipments) == 0 {
			return nil, newValidationError("cannot mark return shipped without a shipment record")
		}
	case models.ClearancePendingSettlement:
		rec, err := s.Occupancy.GetByReservationID(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, newValidationError("no occupancy record to settle against")
		}
		settlement := ComputeSettlement(rec.Revenue,
			r.CommissionRate(models.CommissionPlatform),
			r.CommissionRate(models.CommissionStoreOwner),
			r.TaxRate)
		settlement.ComputedAt = time.Now()
		r.Clearance.Settlement = &settlement
	case models.ClearanceSettlementApproved:
		return nil, newValidationError("settlement approval has its own endpoint")
	case models.ClearancePaymentCompleted:
		return nil, newValidationError("settlement payout has its own endpoint")
	case models.ClearanceClosed:
		now := time.Now()
		r.Clearance.ClosedAt = &now
	}

	r.Clearance.Status = next
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.logger().Info("clearance advanced",
		zap.String("reservationId", r.ID),
		zap.String("from", current),
		zap.String("to", next))
	return r, nil
}

// OverrideClearance force-sets the clearance status, recording who did it
// and why. The only way to move backwards or skip a step. Closed is still
// immutable.
func (s *DefaultRentalService) OverrideClearance(ctx context.Context, actor models.Actor, id string, in models.ClearanceOverrideInput) (*models.Reservation, error) {
	r, err := s.loadForClearance(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Reason == "" {
		return nil, newValidationError("an override reason is required")
	}
	if clearanceIndex(in.Status) < 0 {
		return nil, newValidationError("unknown clearance status %q", in.Status)
	}
	if r.Clearance.Status == models.ClearanceClosed {
		return nil, &InvalidStateError{Current: models.ClearanceClosed, Attempted: "override clearance"}
	}

	r.Clearance.Overrides = append(r.Clearance.Overrides, models.ClearanceOverride{
		ActorID:    actor.ProfileID,
		FromStatus: r.Clearance.Status,
		ToStatus:   in.Status,
		Reason:     in.Reason,
		At:         time.Now(),
	})
	r.Clearance.Status = in.Status
	if in.Status == models.ClearanceClosed && r.Clearance.ClosedAt == nil {
		now := time.Now()
		r.Clearance.ClosedAt = &now
	}
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.logger().Warn("clearance overridden",
		zap.String("reservationId", r.ID),
		zap.String("to", in.Status),
		zap.String("actorId", actor.ProfileID))
	return r, nil
}

// AttachShipment records a return shipment during the return leg of
// clearance.
func (s *DefaultRentalService) AttachShipment(ctx context.Context, actor models.Actor, id string, in models.ShipmentInput) (*models.Reservation, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !(actor.IsStoreOwner() && r.StoreID == actor.ProfileID) {
		return nil, ErrForbidden
	}
	if r.Status != models.StatusCompleted {
		return nil, &InvalidStateError{Current: r.Status, Attempted: "attach shipment"}
	}
	switch r.Clearance.Status {
	case models.ClearancePendingReturnShipment, models.ClearanceReturnShipped:
	default:
		return nil, &InvalidStateError{Current: r.Clearance.Status, Attempted: "attach shipment"}
	}

	r.Clearance.Shipments = append(r.Clearance.Shipments, models.ReturnShipment{
		ID:         uuid.NewString(),
		Carrier:    in.Carrier,
		TrackingNo: in.TrackingNo,
		ShippedAt:  time.Now(),
	})
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ApproveSettlement authorizes the computed payout amounts.
func (s *DefaultRentalService) ApproveSettlement(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error) {
	r, err := s.loadForClearance(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if r.Clearance.Status != models.ClearancePendingSettlement {
		return nil, &InvalidStateError{Current: r.Clearance.Status, Attempted: "approve settlement"}
	}
	if r.Clearance.Settlement == nil {
		return nil, newValidationError("no settlement computed for reservation %s", r.ID)
	}

	now := time.Now()
	r.Clearance.Settlement.ApprovedAt = &now
	r.Clearance.Settlement.ApprovedBy = actor.ProfileID
	r.Clearance.Status = models.ClearanceSettlementApproved
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.logger().Info("settlement approved",
		zap.String("reservationId", r.ID),
		zap.Float64("brandTotal", r.Clearance.Settlement.BrandTotalAmount))
	return r, nil
}

// CompleteSettlementPayment records that the approved payout was executed,
// keyed by the payout receipt reference.
func (s *DefaultRentalService) CompleteSettlementPayment(ctx context.Context, actor models.Actor, id string, receiptRef string) (*models.Reservation, error) {
	r, err := s.loadForClearance(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if r.Clearance.Status != models.ClearanceSettlementApproved {
		return nil, &InvalidStateError{Current: r.Clearance.Status, Attempted: "complete settlement payment"}
	}
	if !r.Clearance.Settlement.Approved() {
		return nil, newValidationError("settlement has not been approved")
	}
	if receiptRef == "" {
		return nil, newValidationError("a payout receipt reference is required")
	}

	r.Clearance.ReceiptRef = receiptRef
	r.Clearance.Status = models.ClearancePaymentCompleted
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.logger().Info("settlement payout recorded",
		zap.String("reservationId", r.ID),
		zap.String("receiptRef", receiptRef))
	return r, nil
}
