package rental

import (
	"context"
	"testing"
	"time"

	"shelfspace/models"

	"github.com/stretchr/testify/assert"
)

func TestWindowsOverlap(t *testing.T) {
	a1, a2 := ms(2026, time.March, 1), ms(2026, time.April, 1)

	tests := []struct {
		name       string
		start, end int64
		want       bool
	}{
		{"identical windows", a1, a2, true},
		{"contained inside", ms(2026, time.March, 10), ms(2026, time.March, 20), true},
		{"containing", ms(2026, time.February, 1), ms(2026, time.May, 1), true},
		{"partial overlap at start", ms(2026, time.February, 15), ms(2026, time.March, 15), true},
		{"partial overlap at end", ms(2026, time.March, 15), ms(2026, time.April, 15), true},
		{"adjacent before", ms(2026, time.February, 1), a1, false},
		{"adjacent after", a2, ms(2026, time.May, 1), false},
		{"fully before", ms(2026, time.January, 1), ms(2026, time.February, 1), false},
		{"fully after", ms(2026, time.May, 1), ms(2026, time.June, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, windowsOverlap(tt.start, tt.end, a1, a2))
		})
	}
}

func TestIsWindowFree(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.svc.Submit(ctx, brandActor, submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.April, 1)))
	assert.NoError(t, err)

	free, err := h.svc.IsWindowFree(ctx, "shelf-1", ms(2026, time.March, 15), ms(2026, time.April, 15), "")
	assert.NoError(t, err)
	assert.False(t, free, "overlapping window must not be free")

	free, err = h.svc.IsWindowFree(ctx, "shelf-1", ms(2026, time.April, 1), ms(2026, time.May, 1), "")
	assert.NoError(t, err)
	assert.True(t, free, "window starting at a previous end date shares no day")
}

func TestIsWindowFreeBadInput(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	free, err := h.svc.IsWindowFree(ctx, "", ms(2026, time.March, 1), ms(2026, time.April, 1), "")
	assert.NoError(t, err)
	assert.False(t, free, "missing shelf id must answer false, not an optimistic true")

	free, err = h.svc.IsWindowFree(ctx, "shelf-1", ms(2026, time.April, 1), ms(2026, time.March, 1), "")
	assert.NoError(t, err)
	assert.False(t, free, "inverted window must answer false")
}

func TestTerminalStatusesDoNotBlock(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	r, err := h.svc.Submit(ctx, brandActor, submitInput("shelf-1", ms(2026, time.March, 1), ms(2026, time.April, 1)))
	assert.NoError(t, err)
	assert.NoError(t, h.svc.Cancel(ctx, brandActor, r.ID))

	free, err := h.svc.IsWindowFree(ctx, "shelf-1", ms(2026, time.March, 1), ms(2026, time.April, 1), "")
	assert.NoError(t, err)
	assert.True(t, free, "a cancelled reservation must release the calendar")
}

func TestNextAvailableMillis(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	next, err := h.svc.NextAvailableMillis(ctx, "shelf-1")
	assert.NoError(t, err)
	assert.Zero(t, next, "empty calendar means available now")

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	end := start.Add(60 * 24 * time.Hour)
	_, err = h.svc.Submit(ctx, brandActor, submitInput("shelf-1", start.UnixMilli(), end.UnixMilli()))
	assert.NoError(t, err)

	next, err = h.svc.NextAvailableMillis(ctx, "shelf-1")
	assert.NoError(t, err)
	assert.Equal(t, end.UnixMilli(), next)

	// Past reservations never push availability forward.
	h2 := newTestHarness()
	past := &models.Reservation{
		ShelfID: "shelf-1", StoreID: "store-1", BrandID: "brand-9",
		StartDate: ms(2020, time.January, 1), EndDate: ms(2020, time.February, 1),
		Status: models.StatusActive,
	}
	assert.NoError(t, h2.repo.Create(ctx, past))
	next, err = h2.svc.NextAvailableMillis(ctx, "shelf-1")
	assert.NoError(t, err)
	assert.Zero(t, next)
}
