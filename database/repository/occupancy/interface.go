package occupancyRepo

import (
	"context"

	"shelfspace/database"
	"shelfspace/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// OccupancyRepository persists the materialized live-shelf records.
type OccupancyRepository interface {
	Create(ctx context.Context, rec *models.OccupancyRecord) error
	GetByID(ctx context.Context, id string) (*models.OccupancyRecord, error)
	GetByReservationID(ctx context.Context, reservationID string) (*models.OccupancyRecord, error)
	GetBySlug(ctx context.Context, slug string) (*models.OccupancyRecord, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// IncrementCounters applies monotonic counter bumps from the external
	// sales recorder.
	IncrementCounters(ctx context.Context, id string, views, orders int64, revenue float64) error

	// Deactivate flips the active flag; records are never deleted.
	Deactivate(ctx context.Context, id string) error
}

type mongoOccupancyRepo struct {
	coll *mongo.Collection
}

// NewMongoOccupancyRepo constructs a MongoDB-backed OccupancyRepository.
func NewMongoOccupancyRepo() OccupancyRepository {
	repo := &mongoOccupancyRepo{
		coll: database.DB().Collection("occupancy_records"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		zap.L().Warn("failed to ensure occupancy indexes", zap.Error(err))
	}
	return repo
}
