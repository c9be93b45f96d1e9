package rental

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodCount returns the number of whole calendar months billed for the
// half-open window [startMs, endMs), rounded up, with a floor of 1. A
// five-day rental still bills one full period.
func PeriodCount(startMs, endMs int64) int {
	start := time.UnixMilli(startMs).UTC()
	end := time.UnixMilli(endMs).UTC()
	if !start.Before(end) {
		return 1
	}

	n := 0
	cur := start
	for cur.Before(end) {
		cur = cur.AddDate(0, 1, 0)
		n++
	}
	return n
}

// TotalAmount derives the reservation price from the per-period base
// price and the billed period count.
func TotalAmount(basePrice float64, startMs, endMs int64) float64 {
	periods := PeriodCount(startMs, endMs)
	total := decimal.NewFromFloat(basePrice).Mul(decimal.NewFromInt(int64(periods)))
	return total.RoundBank(2).InexactFloat64()
}
