package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myproparti-blip/My-pro-backend/internal/middleware"
	"github.com/myproparti-blip/My-pro-backend/internal/services"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

// AdvertisementHandler exposes the banner routes. Reading is public,
// placement is restricted to the administrator.
type AdvertisementHandler struct {
	*BaseHandler
	ads         *services.AdvertisementService
	authService *services.AuthService
}

func NewAdvertisementHandler(base *BaseHandler, ads *services.AdvertisementService, authService *services.AuthService) *AdvertisementHandler {
	return &AdvertisementHandler{
		BaseHandler: base,
		ads:         ads,
		authService: authService,
	}
}

func (h *AdvertisementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/advertisements", h.List)

	admin := rg.Group("/advertisements")
	admin.Use(middleware.AuthMiddleware(h.authService), middleware.AdminOnly())
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

// List returns the banners for a page key ordered by position.
func (h *AdvertisementHandler) List(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	ads, err := h.ads.List(c.Request.Context(), db, c.Query("pageKey"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ads)
}

// Create places a new banner.
func (h *AdvertisementHandler) Create(c *gin.Context) {
	var req dto.CreateAdvertisementRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	ad, err := h.ads.Create(c.Request.Context(), db, h.Actor(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ad)
}

// Update edits an existing banner.
func (h *AdvertisementHandler) Update(c *gin.Context) {
	var req dto.UpdateAdvertisementRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	ad, err := h.ads.Update(c.Request.Context(), db, h.Actor(c), c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ad)
}

// Delete removes a banner.
func (h *AdvertisementHandler) Delete(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.ads.Delete(c.Request.Context(), db, h.Actor(c), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Advertisement deleted"})
}
