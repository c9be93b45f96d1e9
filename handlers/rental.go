package handlers

import (
	"net/http"
	"strconv"

	"shelfspace/middleware"
	"shelfspace/models"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) submitRental(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	var input models.SubmitRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	r, err := hb.RentalSvc.Submit(c.Request.Context(), actor, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (hb *HandlerBundle) updateRental(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	var input models.UpdateRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	r, err := hb.RentalSvc.Update(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) cancelRental(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	if err := hb.RentalSvc.Cancel(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (hb *HandlerBundle) getRental(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	r, err := hb.RentalSvc.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (hb *HandlerBundle) listMyRentals(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no actor on request"})
		return
	}
	if !actor.IsBrandOwner() {
		c.JSON(http.StatusForbidden, gin.H{"error": "brand owner access required"})
		return
	}
	rentals, err := hb.RentalSvc.ListForBrand(c.Request.Context(), actor.ProfileID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rentals": rentals})
}

// shelfAvailability answers "is this window free" for a shelf without
// creating anything.
func (hb *HandlerBundle) shelfAvailability(c *gin.Context) {
	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be epoch milliseconds"})
		return
	}
	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be epoch milliseconds"})
		return
	}
	free, err := hb.RentalSvc.IsWindowFree(c.Request.Context(), c.Param("id"), start, end, "")
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shelfId": c.Param("id"), "free": free})
}

func (hb *HandlerBundle) nextAvailable(c *gin.Context) {
	next, err := hb.RentalSvc.NextAvailableMillis(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shelfId": c.Param("id"), "nextAvailable": next})
}
