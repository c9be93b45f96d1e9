package rental

import (
	"context"
	"fmt"

	"shelfspace/models"

	"github.com/shopspring/decimal"
)

// ComputeSettlement derives the three-way split from recorded sales and
// the frozen commission rates. Pure: no clock, no external state; the same
// inputs always produce identical outputs, so it can be re-run for audit.
//
// totalSalesWithTax is the gross figure recorded against the occupancy
// record. Net sales are split as:
//
//	platform = net × platformRate
//	store    = net × storeOwnerRate
//	brand    = net − platform − store
//
// The brand amount is a remainder, not a multiplication, so the three
// outputs always partition net sales exactly.
func ComputeSettlement(totalSalesWithTax, platformRate, storeOwnerRate, taxRate float64) models.Settlement {
	gross := decimal.NewFromFloat(totalSalesWithTax)
	divisor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(taxRate))
	net := gross.Div(divisor).RoundBank(2)

	platform := net.Mul(decimal.NewFromFloat(platformRate)).RoundBank(2)
	store := net.Mul(decimal.NewFromFloat(storeOwnerRate)).RoundBank(2)
	brand := net.Sub(platform).Sub(store)

	return models.Settlement{
		TotalSalesWithTax:        gross.InexactFloat64(),
		TotalSales:               net.InexactFloat64(),
		PlatformRate:             platformRate,
		StoreOwnerRate:           storeOwnerRate,
		TaxRate:                  taxRate,
		PlatformCommissionAmount: platform.InexactFloat64(),
		StorePayoutAmount:        store.InexactFloat64(),
		BrandTotalAmount:         brand.InexactFloat64(),
	}
}

// RecomputeSettlement re-runs the settlement calculation from the inputs
// stored on the reservation, without writing anything. Legal only once
// clearance has reached pending_settlement.
func (s *DefaultRentalService) RecomputeSettlement(ctx context.Context, id string) (*models.Settlement, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Clearance.Settlement == nil {
		return nil, &InvalidStateError{Current: r.Clearance.Status, Attempted: "recompute settlement"}
	}

	stored := r.Clearance.Settlement
	recomputed := ComputeSettlement(stored.TotalSalesWithTax, stored.PlatformRate, stored.StoreOwnerRate, stored.TaxRate)
	recomputed.ComputedAt = stored.ComputedAt
	recomputed.ApprovedAt = stored.ApprovedAt
	recomputed.ApprovedBy = stored.ApprovedBy

	if recomputed.PlatformCommissionAmount != stored.PlatformCommissionAmount ||
		recomputed.StorePayoutAmount != stored.StorePayoutAmount ||
		recomputed.BrandTotalAmount != stored.BrandTotalAmount {
		return &recomputed, fmt.Errorf("settlement drift detected for reservation %s", id)
	}
	return &recomputed, nil
}
