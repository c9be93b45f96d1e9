package models

import "time"

// Shelf is the physical resource being reserved. Listing and marketplace
// browsing live elsewhere; the core only needs the fields it denormalizes
// onto reservations at submit time.
type Shelf struct {
	ID        string `bson:"id" json:"id"`
	StoreID   string `bson:"storeId" json:"storeId"`
	StoreName string `bson:"storeName" json:"storeName"`
	Name      string `bson:"name" json:"name"`

	// Price per whole calendar month.
	MonthlyPrice float64 `bson:"monthlyPrice" json:"monthlyPrice"`
	Currency     string  `bson:"currency" json:"currency"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
