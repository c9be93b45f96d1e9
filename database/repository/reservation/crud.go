package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"shelfspace/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new reservation.
func (repo *mongoReservationRepo) Create(ctx context.Context, r *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Clearance.Status == "" {
		r.Clearance.Status = models.ClearanceNotStarted
	}

	if _, err := repo.coll.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

// GetByID returns a reservation by its ID.
func (repo *mongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var r models.Reservation
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&r)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("reservation %s not found", id)
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &r, nil
}

// Update replaces the stored document with the given aggregate.
func (repo *mongoReservationRepo) Update(ctx context.Context, r *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	r.UpdatedAt = time.Now()
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"id": r.ID}, r)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("reservation %s not found", r.ID)
	}
	return nil
}

// UpdateStatusIfCurrent is the status CAS guard. The filter includes the
// allowed source statuses so a racing transition loses cleanly instead of
// overwriting the winner.
func (repo *mongoReservationRepo) UpdateStatusIfCurrent(ctx context.Context, id string, from []string, to string, extra map[string]interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":    to,
		"updatedAt": time.Now(),
	}
	for k, v := range extra {
		set[k] = v
	}

	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update reservation status: %w", err)
	}
	return res.MatchedCount > 0, nil
}
