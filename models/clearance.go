package models

import "time"

// Clearance sub-statuses. Entered only after a reservation leaves active;
// forward transitions may not skip a step except through an audited
// admin override. "closed" is terminal and immutable.
const (
	ClearanceNotStarted            = "not_started"
	ClearancePendingInventoryCheck = "pending_inventory_check"
	ClearancePendingReturnShipment = "pending_return_shipment"
	ClearanceReturnShipped         = "return_shipped"
	ClearanceReturnReceived        = "return_received"
	ClearancePendingSettlement     = "pending_settlement"
	ClearanceSettlementApproved    = "settlement_approved"
	ClearancePaymentCompleted      = "payment_completed"
	ClearanceClosed                = "closed"
)

// ClearanceChain is the forward order of the clearance sub-state machine.
var ClearanceChain = []string{
	ClearanceNotStarted,
	ClearancePendingInventoryCheck,
	ClearancePendingReturnShipment,
	ClearanceReturnShipped,
	ClearanceReturnReceived,
	ClearancePendingSettlement,
	ClearanceSettlementApproved,
	ClearancePaymentCompleted,
	ClearanceClosed,
}

// ReturnShipment links a return shipment record to the clearance flow.
type ReturnShipment struct {
	ID         string     `bson:"id" json:"id"`
	Carrier    string     `bson:"carrier" json:"carrier"`
	TrackingNo string     `bson:"trackingNo" json:"trackingNo"`
	ShippedAt  time.Time  `bson:"shippedAt" json:"shippedAt"`
	ReceivedAt *time.Time `bson:"receivedAt,omitempty" json:"receivedAt,omitempty"`
}

// ClearanceOverride is the audit trail of an admin force-set.
type ClearanceOverride struct {
	ActorID    string    `bson:"actorId" json:"actorId"`
	FromStatus string    `bson:"fromStatus" json:"fromStatus"`
	ToStatus   string    `bson:"toStatus" json:"toStatus"`
	Reason     string    `bson:"reason" json:"reason"`
	At         time.Time `bson:"at" json:"at"`
}

// Clearance is the post-occupancy reconciliation state embedded in the
// reservation. It is never queried independently of its reservation.
type Clearance struct {
	Status     string              `bson:"status" json:"status"`
	Settlement *Settlement         `bson:"settlement,omitempty" json:"settlement,omitempty"`
	Shipments  []ReturnShipment    `bson:"shipments,omitempty" json:"shipments,omitempty"`
	Overrides  []ClearanceOverride `bson:"overrides,omitempty" json:"overrides,omitempty"`

	// Opaque reference to the payout receipt blob. Required before the
	// payment_completed step.
	ReceiptRef string `bson:"receiptRef,omitempty" json:"receiptRef,omitempty"`

	StartedAt *time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	ClosedAt  *time.Time `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
}
