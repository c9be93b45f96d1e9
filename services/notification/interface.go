package notification

import (
	"context"

	"shelfspace/models"
)

// NotificationService dispatches notification intents to the external
// delivery system. Fire-and-forget: the core never blocks on delivery.
type NotificationService interface {
	Dispatch(ctx context.Context, intent models.NotificationIntent) error
}
