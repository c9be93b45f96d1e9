package threadRepo

import (
	"context"

	"shelfspace/database"
	"shelfspace/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ThreadRepository backs the messaging collaborator at its boundary: the
// core only ensures a thread exists, posts system notices, and archives.
type ThreadRepository interface {
	EnsureThread(ctx context.Context, reservationID, storeID, brandID string) (*models.Thread, error)
	GetByID(ctx context.Context, id string) (*models.Thread, error)
	AppendMessage(ctx context.Context, msg *models.ThreadMessage) error
	Archive(ctx context.Context, threadID string) error
}

type mongoThreadRepo struct {
	threads  *mongo.Collection
	messages *mongo.Collection
}

// NewMongoThreadRepo constructs a MongoDB-backed ThreadRepository.
func NewMongoThreadRepo() ThreadRepository {
	db := database.DB()
	return &mongoThreadRepo{
		threads:  db.Collection("threads"),
		messages: db.Collection("thread_messages"),
	}
}
