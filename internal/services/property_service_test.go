package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myproparti-blip/My-pro-backend/internal/moderation"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

var (
	ownerActor = moderation.Actor{ID: "owner-1"}
	otherActor = moderation.Actor{ID: "other-1"}
	adminActor = moderation.Actor{ID: "admin-1", Admin: true}
)

func newPropertyFixture() (*PropertyService, *fakePropertyRepo, *recordingNotifier) {
	repo := newFakePropertyRepo()
	notifier := &recordingNotifier{}
	return NewPropertyService(repo, notifier), repo, notifier
}

func createRequest() *dto.CreatePropertyRequest {
	return &dto.CreatePropertyRequest{
		Title:        "2BHK near metro",
		PropertyType: "apartment",
		Price:        4500000,
		Bedrooms:     2,
		Bathrooms:    2,
		City:         "Pune",
	}
}

func TestPropertyCreateStartsPending(t *testing.T) {
	svc, _, notifier := newPropertyFixture()

	property, err := svc.Create(context.Background(), nil, ownerActor, createRequest())
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusPending, property.Status)
	assert.Equal(t, ownerActor.ID, property.UserID)
	assert.True(t, notifier.has("update:properties"))
}

func TestPropertyListHidesUnapprovedFromPublic(t *testing.T) {
	svc, _, _ := newPropertyFixture()
	ctx := context.Background()

	property, err := svc.Create(ctx, nil, ownerActor, createRequest())
	require.NoError(t, err)

	public, err := svc.List(ctx, nil, moderation.Actor{}, dto.PropertyListFilter{})
	require.NoError(t, err)
	assert.Empty(t, public)

	asAdmin, err := svc.List(ctx, nil, adminActor, dto.PropertyListFilter{})
	require.NoError(t, err)
	assert.Len(t, asAdmin, 1)

	_, err = svc.Approve(ctx, nil, adminActor, property.ID)
	require.NoError(t, err)

	public, err = svc.List(ctx, nil, moderation.Actor{}, dto.PropertyListFilter{})
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func TestPropertyGetVisibility(t *testing.T) {
	svc, _, _ := newPropertyFixture()
	ctx := context.Background()

	property, err := svc.Create(ctx, nil, ownerActor, createRequest())
	require.NoError(t, err)

	// Pending: owner and admin see it, strangers get a miss.
	_, err = svc.Get(ctx, nil, ownerActor, property.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, nil, adminActor, property.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, nil, otherActor, property.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestPropertyModerationIsReversible(t *testing.T) {
	svc, _, notifier := newPropertyFixture()
	ctx := context.Background()

	property, err := svc.Create(ctx, nil, ownerActor, createRequest())
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, nil, adminActor, property.ID)
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, approved.Status)
	assert.Empty(t, approved.RejectedReason)

	// Status changes invalidate the public listing and push the new
	// state to the owner.
	assert.True(t, notifier.has("invalidate:properties"))
	assert.True(t, notifier.has("update:properties@"+ownerActor.ID))

	rejected, err := svc.Reject(ctx, nil, adminActor, property.ID, "blurry photos")
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusRejected, rejected.Status)
	assert.Equal(t, "blurry photos", rejected.RejectedReason)

	// Back to approved clears the reason again.
	reapproved, err := svc.Approve(ctx, nil, adminActor, property.ID)
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, reapproved.Status)
	assert.Empty(t, reapproved.RejectedReason)
}

func TestPropertyModerationAdminOnly(t *testing.T) {
	svc, _, _ := newPropertyFixture()
	ctx := context.Background()

	property, err := svc.Create(ctx, nil, ownerActor, createRequest())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, nil, ownerActor, property.ID)
	require.ErrorIs(t, err, apperrors.ErrModerationForbidden)
	_, err = svc.Reject(ctx, nil, ownerActor, property.ID, "reason")
	require.ErrorIs(t, err, apperrors.ErrModerationForbidden)
}

func TestPropertyRejectRequiresReason(t *testing.T) {
	svc, _, _ := newPropertyFixture()
	ctx := context.Background()

	property, err := svc.Create(ctx, nil, ownerActor, createRequest())
	require.NoError(t, err)

	_, err = svc.Reject(ctx, nil, adminActor, property.ID, "   ")
	require.ErrorIs(t, err, apperrors.ErrRejectionReasonRequired)
}

func TestPropertyUpdateKeepsReviewState(t *testing.T) {
	svc, _, _ := newPropertyFixture()
	ctx := context.Background()

	property, err := svc.Create(ctx, nil, ownerActor, createRequest())
	require.NoError(t, err)
	_, err = svc.Reject(ctx, nil, adminActor, property.ID, "wrong price")
	require.NoError(t, err)

	newPrice := 5200000.0
	updated, err := svc.Update(ctx, nil, ownerActor, property.ID, &dto.UpdatePropertyRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, newPrice, updated.Price)
	assert.Equal(t, moderation.StatusRejected, updated.Status)
	assert.Equal(t, "wrong price", updated.RejectedReason)
}

func TestPropertyUpdateOwnerOrAdminOnly(t *testing.T) {
	svc, _, _ := newPropertyFixture()
	ctx := context.Background()

	property, err := svc.Create(ctx, nil, ownerActor, createRequest())
	require.NoError(t, err)

	title := "Updated"
	_, err = svc.Update(ctx, nil, otherActor, property.ID, &dto.UpdatePropertyRequest{Title: &title})
	require.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	_, err = svc.Update(ctx, nil, adminActor, property.ID, &dto.UpdatePropertyRequest{Title: &title})
	require.NoError(t, err)
}

func TestPropertyDelete(t *testing.T) {
	svc, repo, notifier := newPropertyFixture()
	ctx := context.Background()

	property, err := svc.Create(ctx, nil, ownerActor, createRequest())
	require.NoError(t, err)

	err = svc.Delete(ctx, nil, otherActor, property.ID)
	require.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	require.NoError(t, svc.Delete(ctx, nil, ownerActor, property.ID))
	assert.True(t, notifier.has("invalidate:properties"))

	_, err = repo.FindByID(nil, property.ID)
	require.Error(t, err)
}
