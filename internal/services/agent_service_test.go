package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myproparti-blip/My-pro-backend/internal/models"
	"github.com/myproparti-blip/My-pro-backend/internal/moderation"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

func newAgentFixture(t *testing.T) (*AgentService, *fakeUserRepo, moderation.Actor) {
	t.Helper()
	users := newFakeUserRepo()
	owner := &models.User{Phone: "9876543210", Role: models.UserRoleAgent}
	require.NoError(t, users.Create(nil, owner))

	svc := NewAgentService(newFakeAgentRepo(), users, &recordingNotifier{})
	return svc, users, moderation.Actor{ID: owner.ID}
}

func agentRequest() *dto.CreateAgentRequest {
	return &dto.CreateAgentRequest{
		AgentName:     "Sharma Estates",
		OperatingCity: "Mumbai",
		DealsIn:       dto.StringList{"residential", "commercial"},
		Image:         "agents/photo.jpg",
		IDProof:       "agents/id.jpg",
	}
}

func TestAgentCreateCopiesOwnerPhone(t *testing.T) {
	svc, _, owner := newAgentFixture(t)

	agent, err := svc.Create(context.Background(), nil, owner, agentRequest())
	require.NoError(t, err)
	assert.Equal(t, "9876543210", agent.Phone)
	assert.Equal(t, moderation.StatusPending, agent.Status)
	assert.Equal(t, "no", agent.IsPropertyDealer)
	assert.Equal(t, []string{"residential", "commercial"}, []string(agent.DealsIn))
}

func TestAgentCreateOnePerPhone(t *testing.T) {
	svc, _, owner := newAgentFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, nil, owner, agentRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, nil, owner, agentRequest())
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "already exists")
}

func TestAgentListFiltersApprovedForPublic(t *testing.T) {
	svc, _, owner := newAgentFixture(t)
	ctx := context.Background()

	agent, err := svc.Create(ctx, nil, owner, agentRequest())
	require.NoError(t, err)

	public, err := svc.List(ctx, nil, moderation.Actor{}, dto.AgentListFilter{})
	require.NoError(t, err)
	assert.Empty(t, public)

	_, err = svc.Approve(ctx, nil, adminActor, agent.ID)
	require.NoError(t, err)

	public, err = svc.List(ctx, nil, moderation.Actor{}, dto.AgentListFilter{})
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func TestAgentUpdateKeepsRejectedStatus(t *testing.T) {
	svc, _, owner := newAgentFixture(t)
	ctx := context.Background()

	agent, err := svc.Create(ctx, nil, owner, agentRequest())
	require.NoError(t, err)
	_, err = svc.Reject(ctx, nil, adminActor, agent.ID, "missing id proof")
	require.NoError(t, err)

	firm := "Sharma & Sons"
	updated, err := svc.Update(ctx, nil, owner, agent.ID, &dto.UpdateAgentRequest{FirmName: &firm})
	require.NoError(t, err)
	assert.Equal(t, firm, updated.FirmName)
	assert.Equal(t, moderation.StatusRejected, updated.Status)
	assert.Equal(t, "missing id proof", updated.RejectedReason)
}

func TestAgentMutationsOwnerOrAdminOnly(t *testing.T) {
	svc, _, owner := newAgentFixture(t)
	ctx := context.Background()

	agent, err := svc.Create(ctx, nil, owner, agentRequest())
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.Update(ctx, nil, otherActor, agent.ID, &dto.UpdateAgentRequest{AgentName: &name})
	require.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	err = svc.Delete(ctx, nil, otherActor, agent.ID)
	require.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	require.NoError(t, svc.Delete(ctx, nil, adminActor, agent.ID))
}

func TestAgentApproveClearsRejection(t *testing.T) {
	svc, _, owner := newAgentFixture(t)
	ctx := context.Background()

	agent, err := svc.Create(ctx, nil, owner, agentRequest())
	require.NoError(t, err)

	_, err = svc.Reject(ctx, nil, adminActor, agent.ID, "poor photo")
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, nil, adminActor, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, approved.Status)
	assert.Empty(t, approved.RejectedReason)
	assert.Equal(t, adminActor.ID, approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)
}
