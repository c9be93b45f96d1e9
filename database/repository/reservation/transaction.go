package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"shelfspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TransitionWithCascade commits the accept/activate transition and the
// competitor cascade in one Mongo transaction. From any reader's point of
// view the shelf is never "won by A" while a rival B still shows pending.
func (repo *mongoReservationRepo) TransitionWithCascade(ctx context.Context, id, shelfID string, from []string, to string, extra map[string]interface{}) (bool, []models.Reservation, error) {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return false, nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var matched bool
	var cascaded []models.Reservation

	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now()

		set := bson.M{"status": to, "updatedAt": now}
		for k, v := range extra {
			set[k] = v
		}
		res, err := repo.coll.UpdateOne(sc,
			bson.M{"id": id, "status": bson.M{"$in": from}},
			bson.M{"$set": set},
		)
		if err != nil {
			return fmt.Errorf("transition update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			matched = false
			return nil
		}
		matched = true

		// Collect the rivals first so the caller can emit rejection
		// effects for each of them.
		rivalFilter := bson.M{
			"shelfId": shelfID,
			"id":      bson.M{"$ne": id},
			"status":  models.StatusPending,
		}
		cursor, err := repo.coll.Find(sc, rivalFilter)
		if err != nil {
			return fmt.Errorf("cascade lookup failed: %w", err)
		}
		if err := cursor.All(sc, &cascaded); err != nil {
			return fmt.Errorf("cascade decode failed: %w", err)
		}

		if len(cascaded) > 0 {
			_, err = repo.coll.UpdateMany(sc, rivalFilter, bson.M{"$set": bson.M{
				"status":       models.StatusRejected,
				"rejectedBy":   models.RejectedBySystem,
				"rejectReason": "shelf awarded to another request",
				"updatedAt":    now,
			}})
			if err != nil {
				return fmt.Errorf("cascade update failed: %w", err)
			}
			for i := range cascaded {
				cascaded[i].Status = models.StatusRejected
				cascaded[i].RejectedBy = models.RejectedBySystem
				cascaded[i].RejectReason = "shelf awarded to another request"
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return false, nil, fmt.Errorf("cascade transaction failed: %w", err)
	}

	return matched, cascaded, nil
}
