package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myproparti-blip/My-pro-backend/internal/config"
	"github.com/myproparti-blip/My-pro-backend/internal/middleware"
	"github.com/myproparti-blip/My-pro-backend/internal/services"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

// AuthHandler exposes the OTP login flow and the token/profile routes.
type AuthHandler struct {
	*BaseHandler
	authService *services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/send-otp", h.SendOtp)
		auth.POST("/resend-otp", h.ResendOtp)
		auth.POST("/verify-otp", h.VerifyOtp)
		auth.POST("/refresh-token", h.Refresh)
	}

	protected := rg.Group("/auth")
	protected.Use(middleware.AuthMiddleware(h.authService))
	{
		protected.GET("/me", h.Me)
		protected.GET("/users", h.ListUsers)
		protected.DELETE("/users/:id", h.DeleteUser)
		protected.DELETE("/me", h.DeleteSelf)
	}
}

// SendOtp godoc
// @Summary Request a login OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SendOtpRequest true "phone and role"
// @Success 200 {object} dto.SendOtpResponse
// @Router /auth/send-otp [post]
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req dto.SendOtpRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	code, err := h.authService.RequestOtp(c.Request.Context(), db, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	resp := dto.SendOtpResponse{Message: "OTP sent successfully"}
	if !config.GetConfig().SMS.Enabled {
		resp.Code = code
	}
	c.JSON(http.StatusOK, resp)
}

// ResendOtp reissues a code after the cooldown.
func (h *AuthHandler) ResendOtp(c *gin.Context) {
	var req dto.ResendOtpRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	code, err := h.authService.ResendOtp(c.Request.Context(), req.Phone)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	resp := dto.SendOtpResponse{Message: "OTP resent successfully"}
	if !config.GetConfig().SMS.Enabled {
		resp.Code = code
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOtp godoc
// @Summary Verify an OTP and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOtpRequest true "phone, otp and role"
// @Success 200 {object} dto.VerifyResponse
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req dto.VerifyOtpRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	resp, err := h.authService.VerifyOtp(c.Request.Context(), db, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a fresh pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := h.BindAndValidateJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), db, req.RefreshToken)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Me returns the authenticated profile.
func (h *AuthHandler) Me(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	profile, err := h.authService.Profile(c.Request.Context(), db, c.GetString("userID"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListUsers returns every account. Admin only.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	users, err := h.authService.ListUsers(c.Request.Context(), db, c.GetString("userID"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DeleteUser soft-deletes an account by id. Self or admin.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), db, c.GetString("userID"), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// DeleteSelf soft-deletes the caller's own account.
func (h *AuthHandler) DeleteSelf(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	userID := c.GetString("userID")
	if err := h.authService.DeleteAccount(c.Request.Context(), db, userID, userID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
