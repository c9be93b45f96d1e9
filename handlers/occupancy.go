package handlers

import (
	"net/http"

	"shelfspace/models"

	"github.com/gin-gonic/gin"
)

// getDisplayBySlug resolves a live display by its public slug. No auth:
// slugs are the public identity of an occupied shelf.
func (hb *HandlerBundle) getDisplayBySlug(c *gin.Context) {
	rec, err := hb.OccupancyRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (hb *HandlerBundle) getDisplayByID(c *gin.Context) {
	rec, err := hb.OccupancyRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// recordSale accepts counter bumps from the sales pipeline.
func (hb *HandlerBundle) recordSale(c *gin.Context) {
	var input models.RecordSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := hb.RentalSvc.RecordSale(c.Request.Context(), c.Param("id"), input); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}
