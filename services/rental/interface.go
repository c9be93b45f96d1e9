package rental

import (
	"context"

	occupancyRepo "shelfspace/database/repository/occupancy"
	reservationRepo "shelfspace/database/repository/reservation"
	shelfRepo "shelfspace/database/repository/shelf"
	"shelfspace/models"
	"shelfspace/services/messaging"
	"shelfspace/services/notification"

	"go.uber.org/zap"
)

// RentalService drives the full reservation lifecycle: submission against
// the shelf calendar, the admin gate, store-side decisions, idempotent
// payment confirmation, occupancy materialization, and clearance through
// settlement.
type RentalService interface {
	// Calendar.
	IsWindowFree(ctx context.Context, shelfID string, start, end int64, excludeID string) (bool, error)
	NextAvailableMillis(ctx context.Context, shelfID string) (int64, error)

	// Requester operations.
	Submit(ctx context.Context, actor models.Actor, in models.SubmitRentalInput) (*models.Reservation, error)
	Update(ctx context.Context, actor models.Actor, id string, in models.UpdateRentalInput) (*models.Reservation, error)
	Cancel(ctx context.Context, actor models.Actor, id string) error
	GetByID(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error)
	ListForStore(ctx context.Context, storeID string) ([]models.Reservation, error)
	ListForBrand(ctx context.Context, brandID string) ([]models.Reservation, error)

	// Admin gate.
	AdminDecide(ctx context.Context, actor models.Actor, id string, in models.AdminDecisionInput) (*models.Reservation, error)

	// Store-side decisions.
	OwnerAccept(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error)
	OwnerReject(ctx context.Context, actor models.Actor, id string, reason string) (*models.Reservation, error)

	// External payment-confirmed event; idempotent under unbounded
	// duplicate delivery.
	ConfirmPayment(ctx context.Context, ev models.PaymentConfirmedEvent) (*models.Reservation, error)

	// Time-driven expiry of stale requests; idempotent and terminal.
	ExpireStale(ctx context.Context) (int, error)

	// Occupancy.
	CreateOccupancyRecord(ctx context.Context, reservationID string) (*models.OccupancyRecord, error)
	RecordSale(ctx context.Context, occupancyID string, in models.RecordSaleInput) error
	EndOccupancy(ctx context.Context, actor models.Actor, reservationID string) (*models.Reservation, error)

	// Clearance & settlement.
	AdvanceClearance(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error)
	OverrideClearance(ctx context.Context, actor models.Actor, id string, in models.ClearanceOverrideInput) (*models.Reservation, error)
	AttachShipment(ctx context.Context, actor models.Actor, id string, in models.ShipmentInput) (*models.Reservation, error)
	ApproveSettlement(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error)
	CompleteSettlementPayment(ctx context.Context, actor models.Actor, id string, receiptRef string) (*models.Reservation, error)
	RecomputeSettlement(ctx context.Context, id string) (*models.Settlement, error)
}

// DefaultRentalService implements RentalService.
type DefaultRentalService struct {
	Repo      reservationRepo.ReservationRepository
	Occupancy occupancyRepo.OccupancyRepository
	Shelves   shelfRepo.ShelfRepository
	Threads   messaging.ThreadService
	Notifier  notification.NotificationService
	Logger    *zap.Logger
}

func (s *DefaultRentalService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
