package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/myproparti-blip/My-pro-backend/internal/middleware"
	"github.com/myproparti-blip/My-pro-backend/internal/models"
	"github.com/myproparti-blip/My-pro-backend/internal/services"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/internal/storage"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

// PropertyHandler exposes the property listing routes.
type PropertyHandler struct {
	*BaseHandler
	properties  *services.PropertyService
	authService *services.AuthService
	storage     storage.Storage
}

func NewPropertyHandler(base *BaseHandler, properties *services.PropertyService, authService *services.AuthService, store storage.Storage) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler: base,
		properties:  properties,
		authService: authService,
		storage:     store,
	}
}

func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/properties")
	public.Use(middleware.OptionalAuth(h.authService))
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	protected := rg.Group("/properties")
	protected.Use(middleware.AuthMiddleware(h.authService))
	{
		protected.POST("", h.Create)
		protected.GET("/my", h.ListMine)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}

	admin := rg.Group("/properties")
	admin.Use(middleware.AuthMiddleware(h.authService), middleware.AdminOnly())
	{
		admin.PATCH("/:id/approve", h.Approve)
		admin.PATCH("/:id/reject", h.Reject)
	}
}

// Create godoc
// @Summary Submit a property listing
// @Tags properties
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Property
// @Router /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := h.bindCreate(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	property, err := h.properties.Create(c.Request.Context(), db, h.Actor(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.present(c, property))
}

// bindCreate accepts either a JSON body or a multipart form with file
// uploads under "images" and "videos".
func (h *PropertyHandler) bindCreate(c *gin.Context, req *dto.CreatePropertyRequest) error {
	if !isMultipart(c) {
		return h.BindAndValidateJSON(c, req)
	}

	if err := h.BindAndValidateForm(c, req); err != nil {
		return err
	}

	req.Images = dto.SplitList(c.PostForm("images"))
	req.Videos = dto.SplitList(c.PostForm("videos"))

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewBadRequestError("Invalid multipart form: " + err.Error())
	}
	if files := form.File["images"]; len(files) > 0 {
		paths, err := saveUploads(c, h.storage, "properties", files)
		if err != nil {
			return err
		}
		req.Images = append(req.Images, paths...)
	}
	if files := form.File["videos"]; len(files) > 0 {
		paths, err := saveUploads(c, h.storage, "properties", files)
		if err != nil {
			return err
		}
		req.Videos = append(req.Videos, paths...)
	}
	return nil
}

// List returns the catalog, optionally narrowed by city and type.
func (h *PropertyHandler) List(c *gin.Context) {
	var filter dto.PropertyListFilter
	if err := h.BindQuery(c, &filter); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	properties, err := h.properties.List(c.Request.Context(), db, h.Actor(c), filter)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presentList(c, properties))
}

// ListMine returns the caller's own listings in every status.
func (h *PropertyHandler) ListMine(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	properties, err := h.properties.ListMine(c.Request.Context(), db, c.GetString("userID"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presentList(c, properties))
}

// Get returns one listing.
func (h *PropertyHandler) Get(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	property, err := h.properties.Get(c.Request.Context(), db, h.Actor(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, property))
}

// Update applies a partial edit.
func (h *PropertyHandler) Update(c *gin.Context) {
	var req dto.UpdatePropertyRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	property, err := h.properties.Update(c.Request.Context(), db, h.Actor(c), c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, property))
}

// Delete removes a listing.
func (h *PropertyHandler) Delete(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.properties.Delete(c.Request.Context(), db, h.Actor(c), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// Approve moves a listing to approved.
func (h *PropertyHandler) Approve(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	property, err := h.properties.Approve(c.Request.Context(), db, h.Actor(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, property))
}

// Reject moves a listing to rejected with a reason.
func (h *PropertyHandler) Reject(c *gin.Context) {
	var req dto.RejectRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	property, err := h.properties.Reject(c.Request.Context(), db, h.Actor(c), c.Param("id"), req.Reason)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, property))
}

func (h *PropertyHandler) present(c *gin.Context, property *models.Property) *models.Property {
	base := h.BaseURL(c)
	out := *property
	out.Images = mediaURLs(h.storage, base, out.Images)
	out.Videos = mediaURLs(h.storage, base, out.Videos)
	return &out
}

func (h *PropertyHandler) presentList(c *gin.Context, properties []models.Property) []models.Property {
	out := make([]models.Property, len(properties))
	for i := range properties {
		out[i] = *h.present(c, &properties[i])
	}
	return out
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data")
}
