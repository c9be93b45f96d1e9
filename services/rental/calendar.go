package rental

import (
	"context"
	"fmt"
	"time"

	"shelfspace/models"
	"shelfspace/utils"
)

const nextAvailableCacheTTL = 2 * time.Minute

// windowsOverlap is the single overlap predicate for half-open intervals.
// It covers containment in either direction and partial overlap at either
// edge; no special-casing is needed when applied uniformly.
func windowsOverlap(s1, e1, s2, e2 int64) bool {
	return s1 < e2 && s2 < e1
}

// IsWindowFree answers whether [start, end) is free on the shelf against
// all calendar-blocking reservations. Side-effect-free and safe to call
// concurrently from read paths. Any ambiguity answers false, never an
// optimistic true.
func (s *DefaultRentalService) IsWindowFree(ctx context.Context, shelfID string, start, end int64, excludeID string) (bool, error) {
	if shelfID == "" || start >= end {
		return false, nil
	}
	conflicts, err := s.Repo.FindOverlapping(ctx, shelfID, start, end, excludeID, models.BlockingStatuses)
	if err != nil {
		return false, fmt.Errorf("failed to check shelf calendar: %w", err)
	}
	return len(conflicts) == 0, nil
}

// NextAvailableMillis returns the earliest timestamp from which the shelf
// has no blocking reservation, i.e. the maximum blocking end date. Returns
// 0 when the shelf is free now. Cached briefly; any lifecycle write for
// the shelf invalidates the entry.
func (s *DefaultRentalService) NextAvailableMillis(ctx context.Context, shelfID string) (int64, error) {
	cacheKey := nextAvailableCacheKey(shelfID)
	if cached, ok, err := utils.GetCachedValue(ctx, cacheKey); err == nil && ok {
		var ms int64
		if _, err := fmt.Sscanf(cached, "%d", &ms); err == nil {
			return ms, nil
		}
	}

	blocking, err := s.Repo.FindByShelfAndStatus(ctx, shelfID, models.BlockingStatuses)
	if err != nil {
		return 0, fmt.Errorf("failed to query shelf reservations: %w", err)
	}

	now := time.Now().UnixMilli()
	var max int64
	for _, r := range blocking {
		if r.EndDate > now && r.EndDate > max {
			max = r.EndDate
		}
	}

	if err := utils.SetCachedValue(ctx, cacheKey, fmt.Sprintf("%d", max), nextAvailableCacheTTL); err != nil {
		s.logger().Sugar().Warnf("failed to cache next-available for shelf %s: %v", shelfID, err)
	}
	return max, nil
}

func nextAvailableCacheKey(shelfID string) string {
	return "rental:next-available:" + shelfID
}

// invalidateShelfCache drops the cached availability entry after any
// lifecycle write touching the shelf.
func (s *DefaultRentalService) invalidateShelfCache(ctx context.Context, shelfID string) {
	if err := utils.RemoveCachedKeys(ctx, nextAvailableCacheKey(shelfID)); err != nil {
		s.logger().Sugar().Warnf("failed to invalidate availability cache for shelf %s: %v", shelfID, err)
	}
}

// blockedUntil finds the latest conflicting end date for a window, used to
// build ConflictError details. Best effort: 0 when unknown.
func (s *DefaultRentalService) blockedUntil(ctx context.Context, shelfID string, start, end int64, excludeID string) int64 {
	conflicts, err := s.Repo.FindOverlapping(ctx, shelfID, start, end, excludeID, models.BlockingStatuses)
	if err != nil {
		return 0
	}
	var max int64
	for _, r := range conflicts {
		if r.EndDate > max {
			max = r.EndDate
		}
	}
	return max
}
