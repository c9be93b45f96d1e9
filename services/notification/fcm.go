package notification

import (
	"context"
	"fmt"

	"shelfspace/models"
	"shelfspace/utils"

	"firebase.google.com/go/v4/messaging"
)

// FCMNotificationService delivers intents as FCM pushes. Each profile
// subscribes to its own topic, so the dispatcher needs no token lookup:
// the intent already carries everything.
type FCMNotificationService struct{}

func NewFCMNotificationService() *FCMNotificationService {
	return &FCMNotificationService{}
}

func (s *FCMNotificationService) Dispatch(ctx context.Context, intent models.NotificationIntent) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("fcm client not initialized")
	}

	data := map[string]string{
		"kind": intent.Kind,
		"role": intent.RecipientRole,
	}
	for k, v := range intent.Data {
		data[k] = v
	}

	msg := &messaging.Message{
		Topic: "profile-" + intent.RecipientID,
		Notification: &messaging.Notification{
			Title: intent.Title,
			Body:  intent.Body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
