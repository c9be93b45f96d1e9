package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"shelfspace/middleware"
	"shelfspace/models"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) adminDecision(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	var input models.AdminDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	r, err := hb.RentalSvc.AdminDecide(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// confirmPayment is the manual admin path into the same payment-confirmed
// event the webhook produces. Bank transfers and offline settlements land
// here.
func (hb *HandlerBundle) confirmPayment(c *gin.Context) {
	var input struct {
		AmountConfirmed float64 `json:"amountConfirmed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	r, err := hb.RentalSvc.ConfirmPayment(c.Request.Context(), models.PaymentConfirmedEvent{
		ReservationID:   c.Param("id"),
		AmountConfirmed: input.AmountConfirmed,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) advanceClearance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	r, err := hb.RentalSvc.AdvanceClearance(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) overrideClearance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	var input models.ClearanceOverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	r, err := hb.RentalSvc.OverrideClearance(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) approveSettlement(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	r, err := hb.RentalSvc.ApproveSettlement(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) completeSettlement(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	var input struct {
		ReceiptRef string `json:"receiptRef" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a receipt reference is required"})
		return
	}
	r, err := hb.RentalSvc.CompleteSettlementPayment(c.Request.Context(), actor, c.Param("id"), input.ReceiptRef)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) recomputeSettlement(c *gin.Context) {
	settlement, err := hb.RentalSvc.RecomputeSettlement(c.Request.Context(), c.Param("id"))
	if err != nil {
		if settlement != nil {
			// Drift: report both the stored and recomputed views.
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "recomputed": settlement})
			return
		}
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlement": settlement, "consistent": true})
}

// uploadReceipt stores a payout receipt blob and returns its reference for
// use with the settlement completion endpoint.
func (hb *HandlerBundle) uploadReceipt(c *gin.Context) {
	if hb.StorageSvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "receipt storage not configured"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to buffer upload", "details": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()
	receiptRef, err := hb.StorageSvc.UploadReceipt(ctx, tempFilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store receipt", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"receiptRef": receiptRef})
}
