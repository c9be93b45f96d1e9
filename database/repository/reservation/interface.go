package reservationRepo

import (
	"context"
	"time"

	"shelfspace/database"
	"shelfspace/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ReservationRepository persists reservation aggregates. Status writes go
// through CAS-style guards so concurrent transitions can never clobber each
// other; the accept/activate cascade runs in a single transaction so no
// reader ever sees an accepted reservation alongside still-pending rivals.
type ReservationRepository interface {
	Create(ctx context.Context, r *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	Update(ctx context.Context, r *models.Reservation) error

	// UpdateStatusIfCurrent moves id from one of the given source statuses
	// to the target status and applies the extra field updates atomically.
	// Returns false when the reservation was not in any source status.
	UpdateStatusIfCurrent(ctx context.Context, id string, from []string, to string, extra map[string]interface{}) (bool, error)

	// FindOverlapping returns reservations on the shelf in one of the given
	// statuses whose half-open window intersects [start, end), excluding
	// excludeID when non-empty.
	FindOverlapping(ctx context.Context, shelfID string, start, end int64, excludeID string, statuses []string) ([]models.Reservation, error)

	FindByShelfAndStatus(ctx context.Context, shelfID string, statuses []string) ([]models.Reservation, error)
	FindPendingByBrandAndShelf(ctx context.Context, brandID, shelfID string) (*models.Reservation, error)

	// FindVisibleToStore returns the store owner's reservations. Requests
	// parked at or rejected by the admin gate are never included.
	FindVisibleToStore(ctx context.Context, storeID string) ([]models.Reservation, error)
	FindByBrand(ctx context.Context, brandID string) ([]models.Reservation, error)

	// FindStale returns reservations in one of the statuses last updated
	// before the cutoff, for the expiry sweep.
	FindStale(ctx context.Context, statuses []string, cutoff time.Time) ([]models.Reservation, error)

	// TransitionWithCascade atomically moves id from a source status to the
	// target status and rejects every other still-pending reservation on
	// the same shelf. Returns the cascaded reservations (post-update) for
	// effect generation, or a zero match when id was not in a source status.
	TransitionWithCascade(ctx context.Context, id, shelfID string, from []string, to string, extra map[string]interface{}) (bool, []models.Reservation, error)
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a MongoDB-backed ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	repo := &mongoReservationRepo{
		coll: database.DB().Collection("reservations"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		zap.L().Warn("failed to ensure reservation indexes", zap.Error(err))
	}
	return repo
}
