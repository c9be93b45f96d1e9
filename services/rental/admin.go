package rental

import (
	"context"
	"time"

	"shelfspace/config"
	"shelfspace/models"

	"go.uber.org/zap"
)

// AdminDecide resolves a request parked at the admin gate. Approval forwards
// it to the store owner as a fresh pending request, optionally with an
// adjusted platform commission; rejection is final and the store owner
// never learns the request existed.
func (s *DefaultRentalService) AdminDecide(ctx context.Context, actor models.Actor, id string, in models.AdminDecisionInput) (*models.Reservation, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != models.StatusPendingAdminApproval {
		return nil, &InvalidStateError{Current: r.Status, Attempted: "review request"}
	}

	now := time.Now()
	review := &models.AdminReview{
		ReviewerID: actor.ProfileID,
		ReviewedAt: now,
	}

	if !in.Approve {
		if in.Reason == "" {
			return nil, newValidationError("a rejection reason is required")
		}
		review.RejectReason = in.Reason
		matched, err := s.Repo.UpdateStatusIfCurrent(ctx, r.ID,
			[]string{models.StatusPendingAdminApproval}, models.StatusRejected,
			map[string]interface{}{
				"rejectedBy":   models.RejectedByAdmin,
				"rejectReason": in.Reason,
				"adminReview":  review,
			})
		if err != nil {
			return nil, err
		}
		if !matched {
			current, gerr := s.Repo.GetByID(ctx, id)
			if gerr != nil {
				return nil, gerr
			}
			return nil, &InvalidStateError{Current: current.Status, Attempted: "review request"}
		}
		r.Status = models.StatusRejected
		r.RejectedBy = models.RejectedByAdmin
		r.RejectReason = in.Reason
		r.AdminReview = review

		// Only the requester is told; no trace reaches the store side.
		s.applyEffects(ctx, rejectionEffects(r, in.Reason, true))
		return r, nil
	}

	rate := config.AppConfig.PlatformCommission
	if in.CommissionRate != nil {
		rate = *in.CommissionRate
	}
	if rate < 0 || rate > config.AppConfig.MaxPlatformCommission {
		return nil, newValidationError("platform commission must be between 0 and %.2f", config.AppConfig.MaxPlatformCommission)
	}
	r.SetCommissionRate(models.CommissionPlatform, rate)
	review.CommissionRate = rate

	matched, err := s.Repo.UpdateStatusIfCurrent(ctx, r.ID,
		[]string{models.StatusPendingAdminApproval}, models.StatusPending,
		map[string]interface{}{
			"commissions": r.Commissions,
			"adminReview": review,
		})
	if err != nil {
		return nil, err
	}
	if !matched {
		current, gerr := s.Repo.GetByID(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		return nil, &InvalidStateError{Current: current.Status, Attempted: "review request"}
	}
	r.Status = models.StatusPending
	r.AdminReview = review

	// The store owner first hears about the request here.
	s.applyEffects(ctx, newRequestEffects(r))

	s.logger().Info("admin approved reservation",
		zap.String("reservationId", r.ID),
		zap.Float64("platformCommission", rate))
	return r, nil
}
