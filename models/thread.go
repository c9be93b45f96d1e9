package models

import "time"

// Thread message type tags understood by the messaging collaborator.
const (
	MessageTypeRentalRequest  = "rental_request"
	MessageTypeRentalAccepted = "rental_accepted"
	MessageTypeRentalRejected = "rental_rejected"
	MessageTypeText           = "text"
)

// Thread is the communication channel attached to a reservation. Archived
// threads are read-only from the caller's perspective.
type Thread struct {
	ID            string    `bson:"id" json:"id"`
	ReservationID string    `bson:"reservationId" json:"reservationId"`
	StoreID       string    `bson:"storeId" json:"storeId"`
	BrandID       string    `bson:"brandId" json:"brandId"`
	Archived      bool      `bson:"archived" json:"archived"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ThreadMessage is one posted notice. System notices carry a type tag so
// clients can render them distinctly.
type ThreadMessage struct {
	ID          string    `bson:"id" json:"id"`
	ThreadID    string    `bson:"threadId" json:"threadId"`
	MessageType string    `bson:"messageType" json:"messageType"`
	Text        string    `bson:"text" json:"text"`
	System      bool      `bson:"system" json:"system"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
