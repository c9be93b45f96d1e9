package models

import "time"

// Reservation lifecycle statuses.
const (
	StatusPendingAdminApproval = "pending_admin_approval"
	StatusPending              = "pending"
	StatusPaymentPending       = "payment_pending"
	StatusActive               = "active"
	StatusCompleted            = "completed"
	StatusRejected             = "rejected"
	StatusCancelled            = "cancelled"
	StatusExpired              = "expired"
)

// BlockingStatuses are the statuses that occupy the shelf calendar. A
// reservation in any other status never blocks a new window.
var BlockingStatuses = []string{
	StatusPendingAdminApproval,
	StatusPending,
	StatusPaymentPending,
	StatusActive,
}

// TerminalStatuses never leave their state again.
var TerminalStatuses = []string{
	StatusCompleted,
	StatusRejected,
	StatusCancelled,
	StatusExpired,
}

// Who set a reservation to rejected. Admin rejections are never visible
// to the store owner.
const (
	RejectedByAdmin  = "admin"
	RejectedByStore  = "store"
	RejectedBySystem = "system"
)

// Commission types.
const (
	CommissionPlatform   = "platform"
	CommissionStoreOwner = "store_owner"
)

// Commission is a rate frozen onto the reservation at request time.
// Settlement always uses these snapshots, never a live lookup.
type Commission struct {
	Type string  `bson:"type" json:"type"`
	Rate float64 `bson:"rate" json:"rate"`
}

// LineItem is a product snapshot taken at submission time. Catalog edits
// after submission never alter an accepted reservation.
type LineItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
	Category  string  `bson:"category" json:"category"`
}

// AdminReview records the admin gate decision.
type AdminReview struct {
	ReviewerID     string    `bson:"reviewerId" json:"reviewerId"`
	ReviewedAt     time.Time `bson:"reviewedAt" json:"reviewedAt"`
	CommissionRate float64   `bson:"commissionRate,omitempty" json:"commissionRate,omitempty"`
	RejectReason   string    `bson:"rejectReason,omitempty" json:"rejectReason,omitempty"`
}

// Reservation is one brand's request to occupy one shelf for one date
// window. It is created on submission, mutated only through lifecycle
// transitions, and never hard-deleted.
type Reservation struct {
	ID string `bson:"id" json:"id"`

	ShelfID   string `bson:"shelfId" json:"shelfId"`
	ShelfName string `bson:"shelfName" json:"shelfName"`

	// Denormalized at creation for fast owner-scoped lookups.
	StoreID   string `bson:"storeId" json:"storeId"`
	StoreName string `bson:"storeName" json:"storeName"`
	BrandID   string `bson:"brandId" json:"brandId"`
	BrandName string `bson:"brandName" json:"brandName"`

	ThreadID string `bson:"threadId,omitempty" json:"threadId,omitempty"`

	// Half-open window [StartDate, EndDate), millisecond timestamps.
	StartDate int64 `bson:"startDate" json:"startDate"`
	EndDate   int64 `bson:"endDate" json:"endDate"`

	Items []LineItem `bson:"items" json:"items"`

	BasePrice   float64      `bson:"basePrice" json:"basePrice"`
	TotalAmount float64      `bson:"totalAmount" json:"totalAmount"`
	Commissions []Commission `bson:"commissions" json:"commissions"`
	TaxRate     float64      `bson:"taxRate" json:"taxRate"`

	Status       string `bson:"status" json:"status"`
	RejectedBy   string `bson:"rejectedBy,omitempty" json:"rejectedBy,omitempty"`
	RejectReason string `bson:"rejectReason,omitempty" json:"rejectReason,omitempty"`

	AdminReview *AdminReview `bson:"adminReview,omitempty" json:"adminReview,omitempty"`
	Clearance   Clearance    `bson:"clearance" json:"clearance"`

	AmountConfirmed float64 `bson:"amountConfirmed,omitempty" json:"amountConfirmed,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CommissionRate returns the frozen rate for the given commission type,
// or 0 if no snapshot of that type exists.
func (r *Reservation) CommissionRate(typ string) float64 {
	for _, c := range r.Commissions {
		if c.Type == typ {
			return c.Rate
		}
	}
	return 0
}

// SetCommissionRate replaces (or adds) the snapshot for the given type.
func (r *Reservation) SetCommissionRate(typ string, rate float64) {
	for i, c := range r.Commissions {
		if c.Type == typ {
			r.Commissions[i].Rate = rate
			return
		}
	}
	r.Commissions = append(r.Commissions, Commission{Type: typ, Rate: rate})
}

// IsTerminal reports whether the reservation can never transition again.
func (r *Reservation) IsTerminal() bool {
	for _, s := range TerminalStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}
