package occupancyRepo

import (
	"context"
	"fmt"
	"time"

	"shelfspace/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new occupancy record. The unique index on reservationId
// makes a duplicate insert fail rather than silently creating a second
// record for the same reservation.
func (repo *mongoOccupancyRepo) Create(ctx context.Context, rec *models.OccupancyRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if _, err := repo.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("occupancy record already exists for reservation %s: %w", rec.ReservationID, err)
		}
		return fmt.Errorf("failed to insert occupancy record: %w", err)
	}
	return nil
}

func (repo *mongoOccupancyRepo) GetByID(ctx context.Context, id string) (*models.OccupancyRecord, error) {
	return repo.findOne(ctx, bson.M{"id": id})
}

// GetByReservationID returns nil, nil when no record exists yet; callers
// use that as the idempotency probe.
func (repo *mongoOccupancyRepo) GetByReservationID(ctx context.Context, reservationID string) (*models.OccupancyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.OccupancyRecord
	err := repo.coll.FindOne(ctx, bson.M{"reservationId": reservationID}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &rec, nil
}

func (repo *mongoOccupancyRepo) GetBySlug(ctx context.Context, slug string) (*models.OccupancyRecord, error) {
	return repo.findOne(ctx, bson.M{"slug": slug})
}

func (repo *mongoOccupancyRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, fmt.Errorf("slug lookup failed: %w", err)
	}
	return count > 0, nil
}

func (repo *mongoOccupancyRepo) IncrementCounters(ctx context.Context, id string, views, orders int64, revenue float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id, "active": true},
		bson.M{
			"$inc": bson.M{"views": views, "orders": orders, "revenue": revenue},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment counters: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no active occupancy record %s", id)
	}
	return nil
}

func (repo *mongoOccupancyRepo) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"active": false, "deactivatedAt": now, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate occupancy record: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("occupancy record %s not found", id)
	}
	return nil
}

func (repo *mongoOccupancyRepo) findOne(ctx context.Context, filter bson.M) (*models.OccupancyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.OccupancyRecord
	err := repo.coll.FindOne(ctx, filter).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("occupancy record not found")
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &rec, nil
}
