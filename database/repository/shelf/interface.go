package shelfRepo

import (
	"context"

	"shelfspace/database"
	"shelfspace/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ShelfRepository holds the physical resources. Listing management is a
// thin CRUD surface; the rental core reads shelves to denormalize owner
// and pricing data onto reservations.
type ShelfRepository interface {
	Create(ctx context.Context, s *models.Shelf) error
	GetByID(ctx context.Context, id string) (*models.Shelf, error)
	GetByStore(ctx context.Context, storeID string) ([]models.Shelf, error)
	Update(ctx context.Context, s *models.Shelf) error
}

type mongoShelfRepo struct {
	coll *mongo.Collection
}

// NewMongoShelfRepo constructs a MongoDB-backed ShelfRepository.
func NewMongoShelfRepo() ShelfRepository {
	return &mongoShelfRepo{
		coll: database.DB().Collection("shelves"),
	}
}
