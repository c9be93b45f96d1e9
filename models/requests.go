package models

// LineItemInput is the submit-time shape of one product line.
type LineItemInput struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" binding:"gte=0"`
	Category  string  `json:"category"`
}

// SubmitRentalInput creates a new reservation for a shelf. BrandName is
// denormalized from the requester's profile by the caller so downstream
// consumers (notifications, threads) need no profile lookups.
type SubmitRentalInput struct {
	ShelfID   string          `json:"shelfId" binding:"required"`
	BrandName string          `json:"brandName" binding:"required"`
	StartDate int64           `json:"startDate" binding:"required"`
	EndDate   int64           `json:"endDate" binding:"required"`
	Items     []LineItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateRentalInput edits a pending reservation's window and items.
type UpdateRentalInput struct {
	StartDate int64           `json:"startDate" binding:"required"`
	EndDate   int64           `json:"endDate" binding:"required"`
	Items     []LineItemInput `json:"items" binding:"omitempty,min=1,dive"`
}

// AdminDecisionInput resolves the admin gate.
type AdminDecisionInput struct {
	Approve        bool     `json:"approve"`
	CommissionRate *float64 `json:"commissionRate,omitempty"`
	Reason         string   `json:"reason,omitempty"`
}

// PaymentConfirmedEvent is the inbound payment-confirmed signal. The
// transport (webhook, reconciliation poll, manual admin action) does not
// matter; every source produces this same event.
type PaymentConfirmedEvent struct {
	ReservationID   string  `json:"reservationId" binding:"required"`
	AmountConfirmed float64 `json:"amountConfirmed"`
}

// RecordSaleInput is pushed by the external sales recorder against a live
// occupancy record.
type RecordSaleInput struct {
	Views   int64   `json:"views" binding:"gte=0"`
	Orders  int64   `json:"orders" binding:"gte=0"`
	Revenue float64 `json:"revenue" binding:"gte=0"`
}

// ClearanceOverrideInput force-sets a clearance status, with a mandatory
// audit reason.
type ClearanceOverrideInput struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// ShipmentInput attaches a return shipment record during clearance.
type ShipmentInput struct {
	Carrier    string `json:"carrier" binding:"required"`
	TrackingNo string `json:"trackingNo" binding:"required"`
}
