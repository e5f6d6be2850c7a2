package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/moderation"
	"github.com/myproparti-blip/My-pro-backend/internal/validator"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
	"github.com/myproparti-blip/My-pro-backend/pkg/contextkeys"
)

// BaseHandler carries the pieces every handler needs: the validator and
// access to the request-scoped database handle.
type BaseHandler struct {
	Validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{Validator: v}
}

// GetDB pulls the *gorm.DB stored by the database middleware.
func (h *BaseHandler) GetDB(c *gin.Context) (*gorm.DB, error) {
	value, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		return nil, apperrors.InternalError(errors.New("database handle missing from request context"))
	}
	db, ok := value.(*gorm.DB)
	if !ok {
		return nil, apperrors.InternalError(errors.New("database handle has unexpected type"))
	}
	return db, nil
}

// BindAndValidateJSON decodes the JSON body into req and runs the
// validation rules.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperrors.NewBadRequestError("Invalid request body: " + err.Error())
	}
	return h.validate(req)
}

// BindAndValidateForm decodes a form or multipart body into req and runs
// the validation rules.
func (h *BaseHandler) BindAndValidateForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		return apperrors.NewBadRequestError("Invalid request body: " + err.Error())
	}
	return h.validate(req)
}

// BindQuery decodes the query string into req.
func (h *BaseHandler) BindQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return apperrors.NewBadRequestError("Invalid query parameters: " + err.Error())
	}
	return nil
}

func (h *BaseHandler) validate(req interface{}) error {
	if err := h.Validator.Validate(req); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			return apperrors.ValidationError(vErr.Errors)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Actor builds the moderation actor from the identity stored by the auth
// middleware.
func (h *BaseHandler) Actor(c *gin.Context) moderation.Actor {
	return moderation.Actor{
		ID:    c.GetString("userID"),
		Admin: c.GetString("userRole") == "admin",
	}
}

// BaseURL reconstructs the public origin of the request for turning
// stored media paths into absolute URLs. Proxy headers win over the raw
// request fields.
func (h *BaseHandler) BaseURL(c *gin.Context) string {
	scheme := c.GetHeader("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
	}
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}
	return fmt.Sprintf("%s://%s", scheme, host)
}
