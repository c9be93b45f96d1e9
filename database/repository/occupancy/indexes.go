package occupancyRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the occupancy collection.
// The unique reservationId index is what makes record creation idempotent
// under concurrent duplicate activation.
func (repo *mongoOccupancyRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "reservationId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_reservation"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_slug"),
		},
		{
			Keys:    bson.D{{Key: "shelfId", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index().SetName("shelf_active_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create occupancy indexes: %w", err)
	}
	return nil
}
