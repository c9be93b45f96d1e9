package shelfRepo

import (
	"context"
	"fmt"
	"time"

	"shelfspace/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (repo *mongoShelfRepo) Create(ctx context.Context, s *models.Shelf) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := repo.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to insert shelf: %w", err)
	}
	return nil
}

func (repo *mongoShelfRepo) GetByID(ctx context.Context, id string) (*models.Shelf, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Shelf
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("shelf %s not found", id)
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &s, nil
}

func (repo *mongoShelfRepo) GetByStore(ctx context.Context, storeID string) ([]models.Shelf, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"storeId": storeID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shelves: %w", err)
	}
	defer cursor.Close(ctx)

	var shelves []models.Shelf
	if err := cursor.All(ctx, &shelves); err != nil {
		return nil, fmt.Errorf("error decoding shelves: %w", err)
	}
	return shelves, nil
}

func (repo *mongoShelfRepo) Update(ctx context.Context, s *models.Shelf) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.UpdatedAt = time.Now()
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("failed to update shelf: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("shelf %s not found", s.ID)
	}
	return nil
}
