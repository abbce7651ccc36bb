package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// mapServiceError translates a service-layer error into the transport
// response. location builds the Location target for an ExistsError, which is
// surfaced as a 303 redirect to the already-existing resource.
func mapServiceError(ctx *gin.Context, err error, location func(id uuid.UUID) string) {
	if existsErr, ok := services.AsExistsError(err); ok && location != nil {
		ctx.Redirect(http.StatusSeeOther, location(existsErr.ID))
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Item not found"))
	case errors.Is(err, services.ErrConflict):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "Conflict"))
	case errors.Is(err, services.ErrInvalidArgument):
		ctx.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrValidationFailed, "Invalid request data"))
	default:
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Unexpected error"))
	}
}

// parseIDParam reads a UUID path parameter, responding 400 on bad input.
// The bool result reports whether parsing succeeded.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid id format"))
		return uuid.Nil, false
	}
	return id, true
}
