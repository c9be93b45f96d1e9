package messaging

import "context"

// ThreadService is the boundary to the messaging collaborator. Delivery is
// at-least-once; the core never waits for confirmation.
type ThreadService interface {
	// EnsureThread returns the thread ID for a reservation, creating the
	// thread on first use.
	EnsureThread(ctx context.Context, reservationID, storeID, brandID string) (string, error)

	// PostSystemNotice posts a typed system notice into the thread.
	PostSystemNotice(ctx context.Context, threadID, messageType, text string) error

	// Archive makes the thread read-only.
	Archive(ctx context.Context, threadID string) error
}
