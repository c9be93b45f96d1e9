package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the reservations collection.
func (repo *mongoReservationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary calendar query pattern: shelf + status + window.
		{
			Keys:    bson.D{{Key: "shelfId", Value: 1}, {Key: "status", Value: 1}, {Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}},
			Options: options.Index().SetName("shelf_status_window_idx"),
		},
		{
			Keys:    bson.D{{Key: "storeId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("store_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "brandId", Value: 1}, {Key: "shelfId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("brand_shelf_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "updatedAt", Value: 1}},
			Options: options.Index().SetName("status_updated_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}
