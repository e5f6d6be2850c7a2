package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myproparti-blip/My-pro-backend/internal/services"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

// LocationHandler exposes the public geocoding helpers.
type LocationHandler struct {
	*BaseHandler
	locations *services.LocationService
}

func NewLocationHandler(base *BaseHandler, locations *services.LocationService) *LocationHandler {
	return &LocationHandler{BaseHandler: base, locations: locations}
}

func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	locations := rg.Group("/locations")
	{
		locations.GET("/search", h.Search)
		locations.GET("/reverse", h.Reverse)
	}
}

// Search returns place suggestions for a free-text query.
func (h *LocationHandler) Search(c *gin.Context) {
	var query dto.LocationSuggestQuery
	if err := h.BindQuery(c, &query); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	places, err := h.locations.Suggest(c.Request.Context(), query.Query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": places})
}

// Reverse resolves coordinates back to a place.
func (h *LocationHandler) Reverse(c *gin.Context) {
	var query dto.LocationReverseQuery
	if err := h.BindQuery(c, &query); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	place, err := h.locations.Reverse(c.Request.Context(), query.Latitude, query.Longitude)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}
