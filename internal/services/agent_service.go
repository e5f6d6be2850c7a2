package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/logger"
	"github.com/myproparti-blip/My-pro-backend/internal/models"
	"github.com/myproparti-blip/My-pro-backend/internal/moderation"
	"github.com/myproparti-blip/My-pro-backend/internal/repositories"
	"github.com/myproparti-blip/My-pro-backend/internal/services/dto"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

// AgentService manages the agent directory and its review workflow.
type AgentService struct {
	agents   repositories.AgentRepository
	users    repositories.UserRepository
	notifier Notifier
}

func NewAgentService(agents repositories.AgentRepository, users repositories.UserRepository, notifier Notifier) *AgentService {
	return &AgentService{
		agents:   agents,
		users:    users,
		notifier: notifierOrNoop(notifier),
	}
}

// Create registers the actor's agent profile. The phone is copied from
// the owning account and each phone may hold at most one profile.
func (s *AgentService) Create(ctx context.Context, db *gorm.DB, actor moderation.Actor, req *dto.CreateAgentRequest) (*models.Agent, error) {
	owner, err := s.users.FindByID(db, actor.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.agents.FindByPhone(db, owner.Phone); err == nil {
		return nil, apperrors.ErrConflict("agent", "An agent profile already exists for this phone number")
	} else if !errors.Is(err, repositories.ErrAgentNotFound) {
		return nil, apperrors.InternalError(err)
	}

	dealer := req.IsPropertyDealer
	if dealer == "" {
		dealer = "no"
	}

	agent := &models.Agent{
		UserID:             actor.ID,
		Phone:              owner.Phone,
		AgentName:          req.AgentName,
		FirmName:           req.FirmName,
		OperatingCity:      req.OperatingCity,
		OperatingAreaChips: []string(req.OperatingAreaChips),
		OperatingSince:     req.OperatingSince,
		TeamMembers:        req.TeamMembers,
		DealsIn:            []string(req.DealsIn),
		DealsInOther:       []string(req.DealsInOther),
		AboutAgent:         req.AboutAgent,
		IsPropertyDealer:   dealer,
		Image:              req.Image,
		IDProof:            req.IDProof,
		AddressText:        req.Address,
		Location:           req.Location,
		Address: models.Address{
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			Landmark:     req.Landmark,
			Locality:     req.Locality,
			City:         req.City,
			State:        req.State,
			Country:      req.Country,
			Pincode:      req.Pincode,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
		},
		Review: moderation.Review{Status: moderation.StatusPending},
	}

	if err := s.agents.Create(db, agent); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyDataUpdate(KeyAgents, nil, "")
	logger.CtxInfo(ctx, "agent created", "agentId", agent.ID, "userId", actor.ID)
	return agent, nil
}

// List returns the public directory: approved profiles only, unless the
// actor is an administrator.
func (s *AgentService) List(ctx context.Context, db *gorm.DB, actor moderation.Actor, filter dto.AgentListFilter) ([]models.Agent, error) {
	repoFilter := repositories.AgentFilter{OperatingCity: filter.OperatingCity}
	if !actor.Admin {
		repoFilter.Status = string(moderation.StatusApproved)
	}

	agents, err := s.agents.FindAll(db, repoFilter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return agents, nil
}

// ListMine returns the actor's own profiles in every status.
func (s *AgentService) ListMine(ctx context.Context, db *gorm.DB, userID string) ([]models.Agent, error) {
	agents, err := s.agents.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return agents, nil
}

// Get returns one profile; non-approved profiles are visible to the
// owner and the administrator only.
func (s *AgentService) Get(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) (*models.Agent, error) {
	agent, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if agent.Status != moderation.StatusApproved && !actor.Admin && actor.ID != agent.UserID {
		return nil, apperrors.ErrNotFound(repositories.ErrAgentNotFound, "agent", "Agent not found")
	}
	return agent, nil
}

// Update applies a partial edit without touching the review state.
func (s *AgentService) Update(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string, req *dto.UpdateAgentRequest) (*models.Agent, error) {
	agent, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if err := actor.CanMutate(agent.UserID); err != nil {
		return nil, err
	}

	applyAgentUpdate(agent, req)

	if err := s.agents.Update(db, agent); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyDataUpdate(KeyAgents, nil, "")
	return agent, nil
}

// Delete removes a profile. Owner or administrator only.
func (s *AgentService) Delete(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) error {
	agent, err := s.find(db, id)
	if err != nil {
		return err
	}
	if err := actor.CanMutate(agent.UserID); err != nil {
		return err
	}

	if err := s.agents.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifier.NotifyCacheInvalidate(KeyAgents, "")
	logger.CtxInfo(ctx, "agent deleted", "agentId", id, "userId", actor.ID)
	return nil
}

// Approve moves the profile to approved, clearing any rejection reason.
func (s *AgentService) Approve(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) (*models.Agent, error) {
	agent, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if err := moderation.Approve(&agent.Review, actor); err != nil {
		return nil, err
	}
	if err := s.agents.Update(db, agent); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyCacheInvalidate(KeyAgents, "")
	s.notifier.NotifyDataUpdate(KeyAgents, agent, agent.UserID)
	logger.CtxInfo(ctx, "agent approved", "agentId", id, "reviewedBy", actor.ID)
	return agent, nil
}

// Reject moves the profile to rejected with a mandatory reason.
func (s *AgentService) Reject(ctx context.Context, db *gorm.DB, actor moderation.Actor, id, reason string) (*models.Agent, error) {
	agent, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if err := moderation.Reject(&agent.Review, actor, reason); err != nil {
		return nil, err
	}
	if err := s.agents.Update(db, agent); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyCacheInvalidate(KeyAgents, "")
	s.notifier.NotifyDataUpdate(KeyAgents, agent, agent.UserID)
	logger.CtxInfo(ctx, "agent rejected", "agentId", id, "reviewedBy", actor.ID)
	return agent, nil
}

func (s *AgentService) find(db *gorm.DB, id string) (*models.Agent, error) {
	agent, err := s.agents.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAgentNotFound) {
			return nil, apperrors.ErrNotFound(err, "agent", "Agent not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return agent, nil
}

func applyAgentUpdate(agent *models.Agent, req *dto.UpdateAgentRequest) {
	if req.AgentName != nil {
		agent.AgentName = *req.AgentName
	}
	if req.FirmName != nil {
		agent.FirmName = *req.FirmName
	}
	if req.OperatingCity != nil {
		agent.OperatingCity = *req.OperatingCity
	}
	if req.OperatingAreaChips != nil {
		agent.OperatingAreaChips = []string(*req.OperatingAreaChips)
	}
	if req.OperatingSince != nil {
		agent.OperatingSince = *req.OperatingSince
	}
	if req.TeamMembers != nil {
		agent.TeamMembers = *req.TeamMembers
	}
	if req.DealsIn != nil {
		agent.DealsIn = []string(*req.DealsIn)
	}
	if req.DealsInOther != nil {
		agent.DealsInOther = []string(*req.DealsInOther)
	}
	if req.AboutAgent != nil {
		agent.AboutAgent = *req.AboutAgent
	}
	if req.IsPropertyDealer != nil {
		agent.IsPropertyDealer = *req.IsPropertyDealer
	}
	if req.Address != nil {
		agent.AddressText = *req.Address
	}
	if req.Location != nil {
		agent.Location = *req.Location
	}
	if req.City != nil {
		agent.City = *req.City
	}
	if req.State != nil {
		agent.State = *req.State
	}
	if req.Pincode != nil {
		agent.Pincode = *req.Pincode
	}
	if req.Locality != nil {
		agent.Locality = *req.Locality
	}
	if req.Image != nil {
		agent.Image = *req.Image
	}
	if req.IDProof != nil {
		agent.IDProof = *req.IDProof
	}
}
