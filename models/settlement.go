package models

import "time"

// Settlement is the immutable three-way split computed once when clearance
// enters pending_settlement. Recomputing from the same inputs must yield
// identical amounts, so everything the calculation needs is stored here.
type Settlement struct {
	// Inputs.
	TotalSalesWithTax float64 `bson:"totalSalesWithTax" json:"totalSalesWithTax"`
	TotalSales        float64 `bson:"totalSales" json:"totalSales"` // net of tax
	PlatformRate      float64 `bson:"platformRate" json:"platformRate"`
	StoreOwnerRate    float64 `bson:"storeOwnerRate" json:"storeOwnerRate"`
	TaxRate           float64 `bson:"taxRate" json:"taxRate"`

	// Outputs. The three amounts partition TotalSales.
	PlatformCommissionAmount float64 `bson:"platformCommissionAmount" json:"platformCommissionAmount"`
	StorePayoutAmount        float64 `bson:"storePayoutAmount" json:"storePayoutAmount"`
	BrandTotalAmount         float64 `bson:"brandTotalAmount" json:"brandTotalAmount"`

	ComputedAt time.Time  `bson:"computedAt" json:"computedAt"`
	ApprovedAt *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	ApprovedBy string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
}

// Approved reports whether payout has been authorized by an admin.
func (s *Settlement) Approved() bool {
	return s != nil && s.ApprovedAt != nil && s.ApprovedBy != ""
}
