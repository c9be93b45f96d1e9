package handlers

import (
	"net/http"

	"shelfspace/middleware"
	"shelfspace/models"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) listOwnerRentals(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	if !actor.IsStoreOwner() {
		c.JSON(http.StatusForbidden, gin.H{"error": "store owner access required"})
		return
	}
	rentals, err := hb.RentalSvc.ListForStore(c.Request.Context(), actor.ProfileID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rentals": rentals})
}

func (hb *HandlerBundle) ownerAccept(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	r, err := hb.RentalSvc.OwnerAccept(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) ownerReject(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a rejection reason is required"})
		return
	}
	r, err := hb.RentalSvc.OwnerReject(c.Request.Context(), actor, c.Param("id"), input.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) endOccupancy(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	r, err := hb.RentalSvc.EndOccupancy(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) attachShipment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	var input models.ShipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	r, err := hb.RentalSvc.AttachShipment(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
