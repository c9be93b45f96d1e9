package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"shelfspace/config"
	"shelfspace/models"
	"shelfspace/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// stripeWebhook verifies the provider signature and translates successful
// payment events into the internal payment-confirmed event. Stripe retries
// deliveries aggressively, so everything downstream is idempotent and a 200
// is returned even for reservations already activated.
func (hb *HandlerBundle) stripeWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		utils.GetLogger().Warn("stripe signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	var reservationID string
	var amount float64

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}
		reservationID = session.Metadata["reservation_id"]
		amount = float64(session.AmountTotal) / 100
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}
		reservationID = intent.Metadata["reservation_id"]
		amount = float64(intent.Amount) / 100
	default:
		// Not a payment success; acknowledge and move on.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if reservationID == "" {
		utils.GetLogger().Warn("stripe event without reservation metadata", zap.String("eventId", event.ID))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if _, err := hb.RentalSvc.ConfirmPayment(c.Request.Context(), models.PaymentConfirmedEvent{
		ReservationID:   reservationID,
		AmountConfirmed: amount,
	}); err != nil {
		// A non-2xx makes Stripe redeliver; only transient errors should
		// trigger that. Illegal transitions will never succeed on retry.
		if rentalTerminal(err) {
			utils.GetLogger().Warn("payment event dropped",
				zap.String("reservationId", reservationID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
