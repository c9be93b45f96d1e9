package handlers

import (
	"errors"
	"net/http"
	"strings"

	"shelfspace/services/rental"
	"shelfspace/utils"

	"github.com/gin-gonic/gin"
)

// respondErr maps service-layer errors onto HTTP responses. Typed errors
// carry their own status; anything else is a 500.
func respondErr(c *gin.Context, err error) {
	var conflict *rental.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":        conflict.Error(),
			"shelfId":      conflict.ShelfID,
			"blockedUntil": conflict.BlockedUntil,
		})
		return
	}
	if rental.IsInvalidState(err) {
		utils.JSONError(c, http.StatusConflict, "invalid state transition", err.Error())
		return
	}
	if rental.IsValidation(err) {
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid input", err.Error())
		return
	}
	if errors.Is(err, rental.ErrForbidden) {
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
		return
	}
	if strings.Contains(err.Error(), "not found") {
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
}

// rentalTerminal reports whether retrying the same request can never
// succeed, so webhook retries should be suppressed.
func rentalTerminal(err error) bool {
	return rental.IsInvalidState(err) || rental.IsValidation(err)
}
