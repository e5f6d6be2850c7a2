package dto

import "github.com/myproparti-blip/My-pro-backend/internal/models"

// Role is optional on the wire: the configured administrator phone signs
// in without one. Everyone else is held to it in the service.
type SendOtpRequest struct {
	Phone string `json:"phone" validate:"required,in_phone"`
	Role  string `json:"role"`
}

type ResendOtpRequest struct {
	Phone string `json:"phone" validate:"required,in_phone"`
}

type VerifyOtpRequest struct {
	Phone string `json:"phone" validate:"required,in_phone"`
	Code  string `json:"otp" validate:"required"`
	Role  string `json:"role"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
	CreatedAt  string `json:"createdAt"`
}

type SendOtpResponse struct {
	Message string `json:"message"`
	// Code is echoed back only when SMS delivery is disabled, so local
	// clients can complete the flow without a real provider.
	Code string `json:"otp,omitempty"`
}

type VerifyResponse struct {
	User         UserResponse   `json:"user"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	AllUsers     []UserResponse `json:"allUsers,omitempty"`
}

type ProfileResponse struct {
	User UserResponse `json:"user"`
	// AllUsers is populated only for the admin profile.
	AllUsers []UserResponse `json:"allUsers,omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Phone:      user.Phone,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func NewUserResponseList(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
