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

// AgentHandler exposes the agent directory routes.
type AgentHandler struct {
	*BaseHandler
	agents      *services.AgentService
	authService *services.AuthService
	storage     storage.Storage
}

func NewAgentHandler(base *BaseHandler, agents *services.AgentService, authService *services.AuthService, store storage.Storage) *AgentHandler {
	return &AgentHandler{
		BaseHandler: base,
		agents:      agents,
		authService: authService,
		storage:     store,
	}
}

func (h *AgentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/agents")
	public.Use(middleware.OptionalAuth(h.authService))
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	protected := rg.Group("/agents")
	protected.Use(middleware.AuthMiddleware(h.authService))
	{
		protected.POST("", h.Create)
		protected.GET("/my", h.ListMine)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}

	admin := rg.Group("/agents")
	admin.Use(middleware.AuthMiddleware(h.authService), middleware.AdminOnly())
	{
		admin.PATCH("/:id/approve", h.Approve)
		admin.PATCH("/:id/reject", h.Reject)
	}
}

// Create submits an agent profile. The multipart form carries the photo
// under "image" and the identity document under "idProof".
func (h *AgentHandler) Create(c *gin.Context) {
	var req dto.CreateAgentRequest
	if err := h.bindCreate(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	agent, err := h.agents.Create(c.Request.Context(), db, h.Actor(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.present(c, agent))
}

func (h *AgentHandler) bindCreate(c *gin.Context, req *dto.CreateAgentRequest) error {
	if !isMultipart(c) {
		return h.BindAndValidateJSON(c, req)
	}

	if err := h.BindAndValidateForm(c, req); err != nil {
		return err
	}

	req.OperatingAreaChips = dto.SplitList(c.PostForm("operatingAreaChips"))
	req.DealsIn = dto.SplitList(c.PostForm("dealsIn"))
	req.DealsInOther = dto.SplitList(c.PostForm("dealsInOther"))

	if file, err := c.FormFile("image"); err == nil {
		path, err := saveUpload(c, h.storage, "agents", file)
		if err != nil {
			return err
		}
		req.Image = path
	}
	if file, err := c.FormFile("idProof"); err == nil {
		path, err := saveUpload(c, h.storage, "agents", file)
		if err != nil {
			return err
		}
		req.IDProof = path
	}
	return nil
}

// List returns the directory, optionally narrowed by operating city.
func (h *AgentHandler) List(c *gin.Context) {
	var filter dto.AgentListFilter
	if err := h.BindQuery(c, &filter); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	agents, err := h.agents.List(c.Request.Context(), db, h.Actor(c), filter)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presentList(c, agents))
}

// ListMine returns the caller's own profiles.
func (h *AgentHandler) ListMine(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	agents, err := h.agents.ListMine(c.Request.Context(), db, c.GetString("userID"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presentList(c, agents))
}

// Get returns one profile.
func (h *AgentHandler) Get(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	agent, err := h.agents.Get(c.Request.Context(), db, h.Actor(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, agent))
}

// Update applies a partial edit.
func (h *AgentHandler) Update(c *gin.Context) {
	var req dto.UpdateAgentRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	agent, err := h.agents.Update(c.Request.Context(), db, h.Actor(c), c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, agent))
}

// Delete removes a profile.
func (h *AgentHandler) Delete(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.agents.Delete(c.Request.Context(), db, h.Actor(c), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Agent deleted"})
}

// Approve moves a profile to approved.
func (h *AgentHandler) Approve(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	agent, err := h.agents.Approve(c.Request.Context(), db, h.Actor(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, agent))
}

// Reject moves a profile to rejected with a reason.
func (h *AgentHandler) Reject(c *gin.Context) {
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

	agent, err := h.agents.Reject(c.Request.Context(), db, h.Actor(c), c.Param("id"), req.Reason)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.present(c, agent))
}

func (h *AgentHandler) present(c *gin.Context, agent *models.Agent) *models.Agent {
	base := h.BaseURL(c)
	out := *agent
	out.Image = mediaURL(h.storage, base, out.Image)
	out.IDProof = mediaURL(h.storage, base, out.IDProof)
	return &out
}

func (h *AgentHandler) presentList(c *gin.Context, agents []models.Agent) []models.Agent {
	out := make([]models.Agent, len(agents))
	for i := range agents {
		out[i] = *h.present(c, &agents[i])
	}
	return out
}
