package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/auth"
	"github.com/myproparti-blip/My-pro-backend/internal/config"
	"github.com/myproparti-blip/My-pro-backend/internal/logger"
	"github.com/myproparti-blip/My-pro-backend/internal/models"
	"github.com/myproparti-blip/My-pro-backend/internal/otp"
	"github.com/myproparti-blip/My-pro-backend/internal/repositories"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/internal/sms"
	"github.com/myproparti-blip/My-pro-backend/internal/validator"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

// AuthService runs the OTP login flow and the token lifecycle.
type AuthService struct {
	users    repositories.UserRepository
	otpStore otp.Store
	sms      sms.Provider
	notifier Notifier
}

func NewAuthService(users repositories.UserRepository, otpStore otp.Store, smsProvider sms.Provider, notifier Notifier) *AuthService {
	return &AuthService{
		users:    users,
		otpStore: otpStore,
		sms:      smsProvider,
		notifier: notifierOrNoop(notifier),
	}
}

// RequestOtp issues a fresh code for the phone, enforcing the resend
// cooldown against the previous issuance. The code is returned only so
// the disabled-SMS path can echo it; callers must not log it elsewhere.
func (s *AuthService) RequestOtp(ctx context.Context, db *gorm.DB, req *dto.SendOtpRequest) (string, error) {
	if err := s.checkIssueRequest(db, req.Phone, req.Role); err != nil {
		return "", err
	}

	cfg := config.GetConfig()
	session, err := s.otpStore.Get(ctx, req.Phone)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if session != nil {
		cooldown := time.Duration(cfg.OTP.CooldownSecond) * time.Second
		if time.Since(session.CreatedAt) < cooldown {
			return "", apperrors.ErrOtpResendWait
		}
	}

	return s.issue(ctx, req.Phone)
}

// ResendOtp reissues a code for a phone that already requested one. The
// same cooldown applies; a phone with no prior request is rejected.
// Only the phone identifies the session, so no role is taken here.
func (s *AuthService) ResendOtp(ctx context.Context, phone string) (string, error) {
	if !validator.IsIndianPhone(phone) {
		return "", apperrors.ErrInvalidPhone
	}

	cfg := config.GetConfig()
	session, err := s.otpStore.Get(ctx, phone)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if session == nil {
		return "", apperrors.ErrOtpNotFound
	}
	cooldown := time.Duration(cfg.OTP.CooldownSecond) * time.Second
	if time.Since(session.CreatedAt) < cooldown {
		return "", apperrors.ErrOtpResendWait
	}

	return s.issue(ctx, phone)
}

func (s *AuthService) checkIssueRequest(db *gorm.DB, phone, role string) error {
	// The admin phone signs in without a role; it is forced to admin on
	// verification.
	cfg := config.GetConfig()
	isAdminPhone := cfg.Auth.AdminPhone != "" && phone == cfg.Auth.AdminPhone

	if phone == "" || (role == "" && !isAdminPhone) {
		return apperrors.ErrPhoneRoleRequired
	}
	if !validator.IsIndianPhone(phone) {
		return apperrors.ErrInvalidPhone
	}
	if isAdminPhone {
		return nil
	}

	// A phone that already signed up under another role is turned away
	// before a code is ever sent.
	user, err := s.users.FindByPhone(db, phone)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleAdmin && string(user.Role) != role {
		return apperrors.ErrRoleConflict(string(user.Role))
	}
	return nil
}

func (s *AuthService) issue(ctx context.Context, phone string) (string, error) {
	cfg := config.GetConfig()

	code, err := generateCode(cfg.OTP.CodeLength)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	now := time.Now()
	session := &otp.Session{
		Phone:     phone,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(cfg.OTP.TTLMinutes) * time.Minute),
	}
	if err := s.otpStore.Set(ctx, session); err != nil {
		return "", apperrors.InternalError(err)
	}

	if err := s.sms.Send(ctx, phone, code); err != nil {
		logger.CtxError(ctx, "sms dispatch failed", "error", err)
		return "", apperrors.ErrOtpDispatchFailed
	}

	logger.CtxInfo(ctx, "otp issued", "phone", phone)
	return code, nil
}

// VerifyOtp checks the submitted code and resolves the account: the
// admin phone always lands on the admin identity, new phones register
// under the requested role, deleted accounts revive, and a phone held by
// a different role is rejected. The session is consumed on success only.
func (s *AuthService) VerifyOtp(ctx context.Context, db *gorm.DB, req *dto.VerifyOtpRequest) (*dto.VerifyResponse, error) {
	cfg := config.GetConfig()
	isAdminPhone := cfg.Auth.AdminPhone != "" && req.Phone == cfg.Auth.AdminPhone
	if req.Phone == "" || (req.Role == "" && !isAdminPhone) {
		return nil, apperrors.ErrPhoneRoleRequired
	}
	if !validator.IsIndianPhone(req.Phone) {
		return nil, apperrors.ErrInvalidPhone
	}

	session, err := s.otpStore.Get(ctx, req.Phone)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if session == nil {
		return nil, apperrors.ErrOtpExpired
	}
	if session.Code != req.Code {
		return nil, apperrors.ErrOtpIncorrect
	}

	user, err := s.resolveUser(ctx, db, req.Phone, models.UserRole(req.Role))
	if err != nil {
		return nil, err
	}

	// Single use: the consumed code never verifies twice.
	if err := s.otpStore.Delete(ctx, req.Phone); err != nil {
		logger.CtxWarn(ctx, "otp session cleanup failed", "error", err)
	}

	pair, err := auth.GenerateTokenPair(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.VerifyResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}

	// The admin login response doubles as the verification dashboard feed.
	if user.IsAdmin() {
		all, err := s.users.FindAll(db)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.AllUsers = dto.NewUserResponseList(all)
	}

	logger.CtxInfo(ctx, "otp verified", "phone", req.Phone, "role", string(user.Role))
	return resp, nil
}

func (s *AuthService) resolveUser(ctx context.Context, db *gorm.DB, phone string, role models.UserRole) (*models.User, error) {
	cfg := config.GetConfig()
	isAdminPhone := cfg.Auth.AdminPhone != "" && phone == cfg.Auth.AdminPhone

	user, err := s.users.FindByPhone(db, phone)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrUserNotFound):
		user = nil
	default:
		return nil, apperrors.InternalError(err)
	}

	if user == nil {
		newRole := role
		if isAdminPhone {
			newRole = models.UserRoleAdmin
		} else if !models.ValidRole(role) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("Invalid role: %s", role))
		}
		user = &models.User{
			Phone:      phone,
			Role:       newRole,
			IsVerified: true,
		}
		if err := s.users.Create(db, user); err != nil {
			return nil, apperrors.InternalError(err)
		}
		s.notifier.NotifyDataUpdate(KeyUsers, nil, "")
		return user, nil
	}

	if isAdminPhone && user.Role != models.UserRoleAdmin {
		user.Role = models.UserRoleAdmin
	}
	if !isAdminPhone && user.Role != models.UserRoleAdmin && user.Role != role {
		return nil, apperrors.ErrRoleConflict(string(user.Role))
	}

	// A deleted account comes back on a successful verification.
	if user.IsDeleted {
		user.IsDeleted = false
	}
	user.IsVerified = true

	if err := s.users.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// Refresh exchanges a live refresh token for a new pair. The token's
// version must still match the account, and a deleted account cannot
// refresh.
func (s *AuthService) Refresh(ctx context.Context, db *gorm.DB, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrTokenMissing
	}

	claims, err := auth.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.users.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.IsDeleted {
		return nil, apperrors.ErrAccountDeleted
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, apperrors.ErrTokenStale
	}

	pair, err := auth.GenerateTokenPair(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return pair, nil
}

// Authenticate resolves an access token to a live account. Used by the
// request middleware.
func (s *AuthService) Authenticate(ctx context.Context, db *gorm.DB, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, apperrors.ErrTokenMissing
	}

	claims, err := auth.ParseAccessToken(accessToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.users.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.IsDeleted {
		return nil, apperrors.ErrAccountDeleted
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, apperrors.ErrTokenStale
	}
	return user, nil
}

// Profile returns the account for the authenticated user id. The admin
// profile doubles as the verification dashboard and carries every
// account, same as the admin login response.
func (s *AuthService) Profile(ctx context.Context, db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ProfileResponse{User: dto.NewUserResponse(user)}
	if user.IsAdmin() {
		all, err := s.users.FindAll(db)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.AllUsers = dto.NewUserResponseList(all)
	}
	return resp, nil
}

// ListUsers returns every account, newest first. Admin only.
func (s *AuthService) ListUsers(ctx context.Context, db *gorm.DB, actorID string) ([]dto.UserResponse, error) {
	actor, err := s.users.FindByID(db, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !actor.IsAdmin() {
		return nil, apperrors.ErrNotAuthorized
	}

	users, err := s.users.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponseList(users), nil
}

// DeleteAccount soft-deletes the target account and bumps its token
// version so every outstanding token dies with it. Users may delete
// themselves; admins may delete anyone.
func (s *AuthService) DeleteAccount(ctx context.Context, db *gorm.DB, actorID, targetID string) error {
	actor, err := s.users.FindByID(db, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	if actorID != targetID && !actor.IsAdmin() {
		return apperrors.ErrNotAuthorized
	}

	target := actor
	if actorID != targetID {
		target, err = s.users.FindByID(db, targetID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.InternalError(err)
		}
	}

	target.IsDeleted = true
	target.TokenVersion++
	if err := s.users.Update(db, target); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifier.NotifyDataUpdate(KeyUsers, nil, "")
	// The deleted account's own clients hold dead tokens now; tell them
	// to drop everything and start over.
	s.notifier.NotifyFullRefresh(target.ID)
	logger.CtxInfo(ctx, "account deleted", "userId", target.ID)
	return nil
}

// generateCode draws a zero-padded numeric code of the given length from
// crypto/rand.
func generateCode(length int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
