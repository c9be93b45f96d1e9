package models

import "time"

// OccupancyRecord is the materialized "live shelf" record for an activated
// reservation. One-to-one with its reservation; created exactly once.
// Counters are incremented by the external sales recorder and only ever grow.
type OccupancyRecord struct {
	ID            string `bson:"id" json:"id"`
	ReservationID string `bson:"reservationId" json:"reservationId"`

	ShelfID string `bson:"shelfId" json:"shelfId"`
	StoreID string `bson:"storeId" json:"storeId"`
	BrandID string `bson:"brandId" json:"brandId"`

	// Public, human-derived, globally unique.
	Slug string `bson:"slug" json:"slug"`

	// Rates frozen at creation time; later rate changes elsewhere never
	// affect an already-active occupancy.
	Commissions []Commission `bson:"commissions" json:"commissions"`

	Views   int64   `bson:"views" json:"views"`
	Orders  int64   `bson:"orders" json:"orders"`
	Revenue float64 `bson:"revenue" json:"revenue"`

	Active        bool       `bson:"active" json:"active"`
	ActivatedAt   time.Time  `bson:"activatedAt" json:"activatedAt"`
	DeactivatedAt *time.Time `bson:"deactivatedAt,omitempty" json:"deactivatedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
