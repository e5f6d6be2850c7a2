package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myproparti-blip/My-pro-backend/internal/config"
	"github.com/myproparti-blip/My-pro-backend/internal/models"
	"github.com/myproparti-blip/My-pro-backend/internal/otp"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

const (
	testPhone      = "9876543210"
	testAdminPhone = "9999999999"
)

func setupAuthConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{}
	config.AppConfig.Auth.AdminPhone = testAdminPhone
	config.AppConfig.JWT.AccessSecret = "test-access-secret"
	config.AppConfig.JWT.RefreshSecret = "test-refresh-secret"
	config.AppConfig.JWT.AccessTTLMinutes = 15
	config.AppConfig.JWT.RefreshTTLDays = 365
	config.AppConfig.OTP.TTLMinutes = 10
	config.AppConfig.OTP.CooldownSecond = 30
	config.AppConfig.OTP.CodeLength = 4
	t.Cleanup(func() { config.AppConfig = prev })
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *otp.MemoryStore, *fakeSMS) {
	t.Helper()
	setupAuthConfig(t)
	users := newFakeUserRepo()
	store := otp.NewMemoryStore()
	provider := &fakeSMS{}
	svc := NewAuthService(users, store, provider, nil)
	return svc, users, store, provider
}

func TestRequestOtpRejectsInvalidPhone(t *testing.T) {
	svc, _, _, provider := newAuthFixture(t)

	for _, phone := range []string{"12345", "5876543210", "98765432101", "abcdefghij", ""} {
		_, err := svc.RequestOtp(context.Background(), nil, &dto.SendOtpRequest{Phone: phone, Role: "buyer"})
		require.Error(t, err, "phone %q should be rejected", phone)
	}
	assert.Empty(t, provider.sent)
}

func TestRequestOtpIssuesCode(t *testing.T) {
	svc, _, store, provider := newAuthFixture(t)

	code, err := svc.RequestOtp(context.Background(), nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)
	assert.Len(t, code, 4)

	session, err := store.Get(context.Background(), testPhone)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, code, session.Code)
	assert.Equal(t, []string{testPhone}, provider.sent)
}

func TestRequestOtpEnforcesCooldown(t *testing.T) {
	svc, _, store, _ := newAuthFixture(t)

	_, err := svc.RequestOtp(context.Background(), nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)

	_, err = svc.RequestOtp(context.Background(), nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.ErrorIs(t, err, apperrors.ErrOtpResendWait)

	// Backdate the session past the cooldown; a second issue must succeed.
	session, err := store.Get(context.Background(), testPhone)
	require.NoError(t, err)
	session.CreatedAt = time.Now().Add(-31 * time.Second)
	require.NoError(t, store.Set(context.Background(), session))

	_, err = svc.RequestOtp(context.Background(), nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)
}

func TestResendOtpRequiresPriorRequest(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.ResendOtp(context.Background(), testPhone)
	require.ErrorIs(t, err, apperrors.ErrOtpNotFound)
}

func TestRequestOtpSurfacesGatewayFailure(t *testing.T) {
	svc, _, _, provider := newAuthFixture(t)
	provider.fail = true

	_, err := svc.RequestOtp(context.Background(), nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.ErrorIs(t, err, apperrors.ErrOtpDispatchFailed)
}

func TestVerifyOtpRegistersNewUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)

	resp, err := svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)
	assert.Equal(t, testPhone, resp.User.Phone)
	assert.Equal(t, "buyer", resp.User.Role)
	assert.True(t, resp.User.IsVerified)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Empty(t, resp.AllUsers)
}

func TestVerifyOtpIsSingleUse(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)

	_, err = svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)

	_, err = svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.ErrorIs(t, err, apperrors.ErrOtpExpired)
}

func TestVerifyOtpWrongCodeKeepsSession(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	_, err = svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: wrong, Role: "buyer"})
	require.ErrorIs(t, err, apperrors.ErrOtpIncorrect)

	// The correct code still verifies afterwards.
	_, err = svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)
}

func TestVerifyOtpRejectsRoleConflict(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)
	_, err = svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)

	// The conflict blocks a new code from being issued at all.
	_, err = svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "seller"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "already registered as buyer")

	// And a code obtained under one role never verifies under another.
	code, err = svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)
	_, err = svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "seller"})
	require.Error(t, err)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "already registered as buyer")

	// The failed attempt kept the session; under the original role the
	// same code still signs in.
	_, err = svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)
}

func TestVerifyOtpAdminPhone(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	ctx := context.Background()

	// Seed another account so the admin listing has content.
	require.NoError(t, users.Create(nil, &models.User{Phone: testPhone, Role: models.UserRoleBuyer}))

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testAdminPhone, Role: "buyer"})
	require.NoError(t, err)

	resp, err := svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testAdminPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User.Role)
	assert.Len(t, resp.AllUsers, 2)
}

func TestVerifyOtpRevivesDeletedAccount(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	ctx := context.Background()

	user := &models.User{Phone: testPhone, Role: models.UserRoleBuyer, IsDeleted: true}
	require.NoError(t, users.Create(nil, user))

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)
	resp, err := svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)

	revived, err := users.FindByID(nil, resp.User.ID)
	require.NoError(t, err)
	assert.False(t, revived.IsDeleted)
}

func TestRefreshRotatesPair(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)
	resp, err := svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, nil, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)
	resp, err := svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)

	// An access token signed with the other secret must not refresh.
	_, err = svc.Refresh(ctx, nil, resp.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestDeleteAccountInvalidatesTokens(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	ctx := context.Background()

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)
	resp, err := svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testPhone, Code: code, Role: "buyer"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, nil, resp.User.ID, resp.User.ID))

	deleted, err := users.FindByID(nil, resp.User.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.Equal(t, 1, deleted.TokenVersion)

	// Both the access and refresh credentials die with the account.
	_, err = svc.Authenticate(ctx, nil, resp.AccessToken)
	require.Error(t, err)
	_, err = svc.Refresh(ctx, nil, resp.RefreshToken)
	require.Error(t, err)
}

func TestDeleteAccountRequiresSelfOrAdmin(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	ctx := context.Background()

	victim := &models.User{Phone: testPhone, Role: models.UserRoleBuyer}
	require.NoError(t, users.Create(nil, victim))
	other := &models.User{Phone: "9123456789", Role: models.UserRoleSeller}
	require.NoError(t, users.Create(nil, other))
	admin := &models.User{Phone: testAdminPhone, Role: models.UserRoleAdmin}
	require.NoError(t, users.Create(nil, admin))

	err := svc.DeleteAccount(ctx, nil, other.ID, victim.ID)
	require.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	require.NoError(t, svc.DeleteAccount(ctx, nil, admin.ID, victim.ID))
}

func TestListUsersAdminOnly(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	ctx := context.Background()

	buyer := &models.User{Phone: testPhone, Role: models.UserRoleBuyer}
	require.NoError(t, users.Create(nil, buyer))
	admin := &models.User{Phone: testAdminPhone, Role: models.UserRoleAdmin}
	require.NoError(t, users.Create(nil, admin))

	_, err := svc.ListUsers(ctx, nil, buyer.ID)
	require.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	all, err := svc.ListUsers(ctx, nil, admin.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRequestOtpRoleOptionalForAdminPhone(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	// Everyone else must say who they are signing up as.
	_, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone})
	require.ErrorIs(t, err, apperrors.ErrPhoneRoleRequired)

	// The admin phone signs in with no role at all.
	_, err = svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testAdminPhone})
	require.NoError(t, err)
}

func TestVerifyOtpAdminPhoneWithoutRole(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, users.Create(nil, &models.User{Phone: testPhone, Role: models.UserRoleBuyer}))

	code, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testAdminPhone})
	require.NoError(t, err)

	resp, err := svc.VerifyOtp(ctx, nil, &dto.VerifyOtpRequest{Phone: testAdminPhone, Code: code})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User.Role)
	assert.Len(t, resp.AllUsers, 2)
}

func TestResendOtpReissuesAfterCooldown(t *testing.T) {
	svc, _, store, provider := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.RequestOtp(ctx, nil, &dto.SendOtpRequest{Phone: testPhone, Role: "buyer"})
	require.NoError(t, err)

	_, err = svc.ResendOtp(ctx, testPhone)
	require.ErrorIs(t, err, apperrors.ErrOtpResendWait)

	session, err := store.Get(ctx, testPhone)
	require.NoError(t, err)
	session.CreatedAt = time.Now().Add(-31 * time.Second)
	require.NoError(t, store.Set(ctx, session))

	second, err := svc.ResendOtp(ctx, testPhone)
	require.NoError(t, err)
	assert.Len(t, second, 4)

	// The reissued code replaces the first one.
	session, err = store.Get(ctx, testPhone)
	require.NoError(t, err)
	assert.Equal(t, second, session.Code)
	assert.Equal(t, []string{testPhone, testPhone}, provider.sent)
}

func TestProfileAdminIncludesAllUsers(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	ctx := context.Background()

	buyer := &models.User{Phone: testPhone, Role: models.UserRoleBuyer}
	require.NoError(t, users.Create(nil, buyer))
	admin := &models.User{Phone: testAdminPhone, Role: models.UserRoleAdmin}
	require.NoError(t, users.Create(nil, admin))

	profile, err := svc.Profile(ctx, nil, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, profile.User.ID)
	assert.Empty(t, profile.AllUsers)

	profile, err = svc.Profile(ctx, nil, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, profile.User.ID)
	assert.Len(t, profile.AllUsers, 2)
}

func TestDeleteAccountSignalsFullRefresh(t *testing.T) {
	setupAuthConfig(t)
	users := newFakeUserRepo()
	notifier := &recordingNotifier{}
	svc := NewAuthService(users, otp.NewMemoryStore(), &fakeSMS{}, notifier)
	ctx := context.Background()

	user := &models.User{Phone: testPhone, Role: models.UserRoleBuyer}
	require.NoError(t, users.Create(nil, user))

	require.NoError(t, svc.DeleteAccount(ctx, nil, user.ID, user.ID))
	assert.True(t, notifier.has("update:users"))
	assert.True(t, notifier.has("refresh@"+user.ID))
}
