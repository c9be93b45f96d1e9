package handlers

import (
	occupancyRepoPkg "shelfspace/database/repository/occupancy"
	"shelfspace/services/rental"
	"shelfspace/services/storage"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	RentalSvc     rental.RentalService
	OccupancyRepo occupancyRepoPkg.OccupancyRepository
	StorageSvc    storage.StorageService

	// Requester endpoints.
	SubmitRentalHandler      gin.HandlerFunc
	UpdateRentalHandler      gin.HandlerFunc
	CancelRentalHandler      gin.HandlerFunc
	GetRentalHandler         gin.HandlerFunc
	ListMyRentalsHandler     gin.HandlerFunc
	ShelfAvailabilityHandler gin.HandlerFunc
	NextAvailableHandler     gin.HandlerFunc

	// Store-owner endpoints.
	ListOwnerRentalsHandler gin.HandlerFunc
	OwnerAcceptHandler      gin.HandlerFunc
	OwnerRejectHandler      gin.HandlerFunc
	EndOccupancyHandler     gin.HandlerFunc
	AttachShipmentHandler   gin.HandlerFunc

	// Admin endpoints.
	AdminDecisionHandler       gin.HandlerFunc
	ConfirmPaymentHandler      gin.HandlerFunc
	AdvanceClearanceHandler    gin.HandlerFunc
	OverrideClearanceHandler   gin.HandlerFunc
	ApproveSettlementHandler   gin.HandlerFunc
	CompleteSettlementHandler  gin.HandlerFunc
	RecomputeSettlementHandler gin.HandlerFunc
	UploadReceiptHandler       gin.HandlerFunc

	// Webhook endpoints.
	StripeWebhookHandler gin.HandlerFunc

	// Occupancy endpoints.
	GetDisplayBySlugHandler gin.HandlerFunc
	GetDisplayByIDHandler   gin.HandlerFunc
	RecordSaleHandler       gin.HandlerFunc
}

// NewHandlerBundle wires every handler from the given services.
func NewHandlerBundle(svc rental.RentalService, occRepo occupancyRepoPkg.OccupancyRepository, storageSvc storage.StorageService) *HandlerBundle {
	hb := &HandlerBundle{
		RentalSvc:     svc,
		OccupancyRepo: occRepo,
		StorageSvc:    storageSvc,
	}

	hb.SubmitRentalHandler = hb.submitRental
	hb.UpdateRentalHandler = hb.updateRental
	hb.CancelRentalHandler = hb.cancelRental
	hb.GetRentalHandler = hb.getRental
	hb.ListMyRentalsHandler = hb.listMyRentals
	hb.ShelfAvailabilityHandler = hb.shelfAvailability
	hb.NextAvailableHandler = hb.nextAvailable

	hb.ListOwnerRentalsHandler = hb.listOwnerRentals
	hb.OwnerAcceptHandler = hb.ownerAccept
	hb.OwnerRejectHandler = hb.ownerReject
	hb.EndOccupancyHandler = hb.endOccupancy
	hb.AttachShipmentHandler = hb.attachShipment

	hb.AdminDecisionHandler = hb.adminDecision
	hb.ConfirmPaymentHandler = hb.confirmPayment
	hb.AdvanceClearanceHandler = hb.advanceClearance
	hb.OverrideClearanceHandler = hb.overrideClearance
	hb.ApproveSettlementHandler = hb.approveSettlement
	hb.CompleteSettlementHandler = hb.completeSettlement
	hb.RecomputeSettlementHandler = hb.recomputeSettlement
	hb.UploadReceiptHandler = hb.uploadReceipt

	hb.StripeWebhookHandler = hb.stripeWebhook

	hb.GetDisplayBySlugHandler = hb.getDisplayBySlug
	hb.GetDisplayByIDHandler = hb.getDisplayByID
	hb.RecordSaleHandler = hb.recordSale

	return hb
}
