package threadRepo

import (
	"context"
	"fmt"
	"time"

	"shelfspace/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureThread returns the thread for the reservation, creating it on
// first use.
func (repo *mongoThreadRepo) EnsureThread(ctx context.Context, reservationID, storeID, brandID string) (*models.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	thread := models.Thread{
		ID:            uuid.New().String(),
		ReservationID: reservationID,
		StoreID:       storeID,
		BrandID:       brandID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res := repo.threads.FindOneAndUpdate(ctx,
		bson.M{"reservationId": reservationID},
		bson.M{"$setOnInsert": thread},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var out models.Thread
	if err := res.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to ensure thread: %w", err)
	}
	return &out, nil
}

func (repo *mongoThreadRepo) GetByID(ctx context.Context, id string) (*models.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var t models.Thread
	err := repo.threads.FindOne(ctx, bson.M{"id": id}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("thread %s not found", id)
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &t, nil
}

func (repo *mongoThreadRepo) AppendMessage(ctx context.Context, msg *models.ThreadMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now()

	if _, err := repo.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	_, err := repo.threads.UpdateOne(ctx,
		bson.M{"id": msg.ThreadID},
		bson.M{"$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to touch thread: %w", err)
	}
	return nil
}

func (repo *mongoThreadRepo) Archive(ctx context.Context, threadID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.threads.UpdateOne(ctx,
		bson.M{"id": threadID},
		bson.M{"$set": bson.M{"archived": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to archive thread: %w", err)
	}
	return nil
}
