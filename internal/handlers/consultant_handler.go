package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myproparti-blip/My-pro-backend/internal/middleware"
	"github.com/myproparti-blip/My-pro-backend/internal/models"
	"github.com/myproparti-blip/My-pro-backend/internal/services"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/internal/storage"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

// ConsultantHandler exposes the consultant directory routes.
type ConsultantHandler struct {
	*BaseHandler
	consultants *services.ConsultantService
	authService *services.AuthService
	storage     storage.Storage
}

func NewConsultantHandler(base *BaseHandler, consultants *services.ConsultantService, authService *services.AuthService, store storage.Storage) *ConsultantHandler {
	return &ConsultantHandler{
		BaseHandler: base,
		consultants: consultants,
		authService: authService,
		storage:     store,
	}
}

func (h *ConsultantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/consultants")
	public.Use(middleware.OptionalAuth(h.authService))
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	protected := rg.Group("/consultants")
	protected.Use(middleware.AuthMiddleware(h.authService))
	{
		protected.POST("", h.Create)
		protected.GET("/my", h.ListMine)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}

	admin := rg.Group("/consultants")
	admin.Use(middleware.AuthMiddleware(h.authService), middleware.AdminOnly())
	{
		admin.PATCH("/:id/approve", h.Approve)
		admin.PATCH("/:id/reject", h.Reject)
	}
}

// Create submits a consultant profile.
func (h *ConsultantHandler) Create(c *gin.Context) {
	var req dto.CreateConsultantRequest
	if err := h.bindCreate(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	consultant, err := h.consultants.Create(c.Request.Context(), db, h.Actor(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.present(c, consultant))
}

func (h *ConsultantHandler) bindCreate(c *gin.Context, req *dto.CreateConsultantRequest) error {
	if !isMultipart(c) {
		return h.BindAndValidateJSON(c, req)
	}

	if err := h.BindAndValidateForm(c, req); err != nil {
		return err
	}

	req.Languages = dto.SplitList(c.PostForm("languages"))

	if file, err := c.FormFile("image"); err == nil {
		path, err := saveUpload(c, h.storage, "consultants", file)
		if err != nil {
			return err
		}
		req.Image = path
	}
	if file, err := c.FormFile("idProof"); err == nil {
		path, err := saveUpload(c, h.storage, "consultants", file)
		if err != nil {
			return err
		}
		req.IDProof = path
	}
	return nil
}

// List returns the directory, optionally narrowed by location.
func (h *ConsultantHandler) List(c *gin.Context) {
	var filter dto.ConsultantListFilter
	if err := h.BindQuery(c, &filter); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	consultants, err := h.consultants.List(c.Request.Context(), db, h.Actor(c), filter)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presentList(c, consultants))
}

// ListMine returns the caller's own profiles.
func (h *ConsultantHandler) ListMine(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	consultants, err := h.consultants.ListMine(c.Request.Context(), db, c.GetString("userID"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presentList(c, consultants))
}

// Get returns one profile.
func (h *ConsultantHandler) Get(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	consultant, err := h.consultants.Get(c.Request.Context(), db, h.Actor(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, consultant))
}

// Update applies a partial edit.
func (h *ConsultantHandler) Update(c *gin.Context) {
	var req dto.UpdateConsultantRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	consultant, err := h.consultants.Update(c.Request.Context(), db, h.Actor(c), c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, consultant))
}

// Delete removes a profile.
func (h *ConsultantHandler) Delete(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.consultants.Delete(c.Request.Context(), db, h.Actor(c), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consultant deleted"})
}

// Approve moves a profile to approved.
func (h *ConsultantHandler) Approve(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	consultant, err := h.consultants.Approve(c.Request.Context(), db, h.Actor(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, consultant))
}

// Reject moves a profile to rejected with a reason.
func (h *ConsultantHandler) Reject(c *gin.Context) {
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

	consultant, err := h.consultants.Reject(c.Request.Context(), db, h.Actor(c), c.Param("id"), req.Reason)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, consultant))
}

func (h *ConsultantHandler) present(c *gin.Context, consultant *models.Consultant) *models.Consultant {
	base := h.BaseURL(c)
	out := *consultant
	out.Image = mediaURL(h.storage, base, out.Image)
	out.IDProof = mediaURL(h.storage, base, out.IDProof)
	return &out
}

func (h *ConsultantHandler) presentList(c *gin.Context, consultants []models.Consultant) []models.Consultant {
	out := make([]models.Consultant, len(consultants))
	for i := range consultants {
		out[i] = *h.present(c, &consultants[i])
	}
	return out
}
