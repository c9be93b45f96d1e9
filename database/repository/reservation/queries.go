package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"shelfspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *mongoReservationRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}

// FindOverlapping applies the half-open interval predicate in the query:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
func (repo *mongoReservationRepo) FindOverlapping(ctx context.Context, shelfID string, start, end int64, excludeID string, statuses []string) ([]models.Reservation, error) {
	filter := bson.M{
		"shelfId":   shelfID,
		"status":    bson.M{"$in": statuses},
		"startDate": bson.M{"$lt": end},
		"endDate":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return repo.find(ctx, filter)
}

func (repo *mongoReservationRepo) FindByShelfAndStatus(ctx context.Context, shelfID string, statuses []string) ([]models.Reservation, error) {
	return repo.find(ctx, bson.M{
		"shelfId": shelfID,
		"status":  bson.M{"$in": statuses},
	})
}

// FindPendingByBrandAndShelf returns the brand's own non-terminal request
// on the shelf, if any. A brand may only hold one at a time; submit updates
// it in place instead of duplicating.
func (repo *mongoReservationRepo) FindPendingByBrandAndShelf(ctx context.Context, brandID, shelfID string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var r models.Reservation
	err := repo.coll.FindOne(ctx, bson.M{
		"brandId": brandID,
		"shelfId": shelfID,
		"status":  bson.M{"$in": []string{models.StatusPendingAdminApproval, models.StatusPending}},
	}).Decode(&r)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &r, nil
}

// FindVisibleToStore excludes requests still parked at the admin gate and
// requests the admin rejected; the store owner never observes either.
func (repo *mongoReservationRepo) FindVisibleToStore(ctx context.Context, storeID string) ([]models.Reservation, error) {
	return repo.find(ctx, bson.M{
		"storeId":    storeID,
		"status":     bson.M{"$ne": models.StatusPendingAdminApproval},
		"rejectedBy": bson.M{"$ne": models.RejectedByAdmin},
	}, options.Find().SetSort(bson.M{"createdAt": -1}))
}

func (repo *mongoReservationRepo) FindByBrand(ctx context.Context, brandID string) ([]models.Reservation, error) {
	return repo.find(ctx, bson.M{"brandId": brandID}, options.Find().SetSort(bson.M{"createdAt": -1}))
}

func (repo *mongoReservationRepo) FindStale(ctx context.Context, statuses []string, cutoff time.Time) ([]models.Reservation, error) {
	return repo.find(ctx, bson.M{
		"status":    bson.M{"$in": statuses},
		"updatedAt": bson.M{"$lt": cutoff},
	})
}
