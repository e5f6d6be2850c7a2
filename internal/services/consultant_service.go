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

// ConsultantService manages the consultant directory and its review
// workflow.
type ConsultantService struct {
	consultants repositories.ConsultantRepository
	notifier    Notifier
}

func NewConsultantService(consultants repositories.ConsultantRepository, notifier Notifier) *ConsultantService {
	return &ConsultantService{
		consultants: consultants,
		notifier:    notifierOrNoop(notifier),
	}
}

// Create registers a consultant profile for the actor. Uniqueness is on
// the (name, phone) pair, so the same person can appear under different
// practice names but not twice under the same one.
func (s *ConsultantService) Create(ctx context.Context, db *gorm.DB, actor moderation.Actor, req *dto.CreateConsultantRequest) (*models.Consultant, error) {
	if _, err := s.consultants.FindByNamePhone(db, req.Name, req.Phone); err == nil {
		return nil, apperrors.ErrConflict("consultant", "A consultant with this name and phone number already exists")
	} else if !errors.Is(err, repositories.ErrConsultantNotFound) {
		return nil, apperrors.InternalError(err)
	}

	feeType := models.FeeType(req.FeeType)
	if feeType == "" {
		feeType = models.FeeTypeProject
	}

	consultant := &models.Consultant{
		UserID:         actor.ID,
		Name:           req.Name,
		Phone:          req.Phone,
		Designation:    req.Designation,
		Experience:     req.Experience,
		Fee:            req.Fee,
		FeeType:        feeType,
		Expertise:      req.Expertise,
		Certifications: req.Certifications,
		Languages:      []string(req.Languages),
		Image:          req.Image,
		IDProof:        req.IDProof,
		AddressText:    req.Address,
		Location:       req.Location,
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

	if err := s.consultants.Create(db, consultant); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyDataUpdate(KeyConsultants, nil, "")
	logger.CtxInfo(ctx, "consultant created", "consultantId", consultant.ID, "userId", actor.ID)
	return consultant, nil
}

// List returns the public directory: approved profiles only, unless the
// actor is an administrator.
func (s *ConsultantService) List(ctx context.Context, db *gorm.DB, actor moderation.Actor, filter dto.ConsultantListFilter) ([]models.Consultant, error) {
	repoFilter := repositories.ConsultantFilter{Location: filter.Location}
	if !actor.Admin {
		repoFilter.Status = string(moderation.StatusApproved)
	}

	consultants, err := s.consultants.FindAll(db, repoFilter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return consultants, nil
}

// ListMine returns the actor's own profiles in every status.
func (s *ConsultantService) ListMine(ctx context.Context, db *gorm.DB, userID string) ([]models.Consultant, error) {
	consultants, err := s.consultants.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return consultants, nil
}

// Get returns one profile; non-approved profiles are visible to the
// owner and the administrator only.
func (s *ConsultantService) Get(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) (*models.Consultant, error) {
	consultant, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if consultant.Status != moderation.StatusApproved && !actor.Admin && actor.ID != consultant.UserID {
		return nil, apperrors.ErrNotFound(repositories.ErrConsultantNotFound, "consultant", "Consultant not found")
	}
	return consultant, nil
}

// Update applies a partial edit without touching the review state.
func (s *ConsultantService) Update(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string, req *dto.UpdateConsultantRequest) (*models.Consultant, error) {
	consultant, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if err := actor.CanMutate(consultant.UserID); err != nil {
		return nil, err
	}

	applyConsultantUpdate(consultant, req)

	if err := s.consultants.Update(db, consultant); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyDataUpdate(KeyConsultants, nil, "")
	return consultant, nil
}

// Delete removes a profile. Owner or administrator only.
func (s *ConsultantService) Delete(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) error {
	consultant, err := s.find(db, id)
	if err != nil {
		return err
	}
	if err := actor.CanMutate(consultant.UserID); err != nil {
		return err
	}

	if err := s.consultants.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifier.NotifyCacheInvalidate(KeyConsultants, "")
	logger.CtxInfo(ctx, "consultant deleted", "consultantId", id, "userId", actor.ID)
	return nil
}

// Approve moves the profile to approved, clearing any rejection reason.
func (s *ConsultantService) Approve(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) (*models.Consultant, error) {
	consultant, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if err := moderation.Approve(&consultant.Review, actor); err != nil {
		return nil, err
	}
	if err := s.consultants.Update(db, consultant); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyCacheInvalidate(KeyConsultants, "")
	s.notifier.NotifyDataUpdate(KeyConsultants, consultant, consultant.UserID)
	logger.CtxInfo(ctx, "consultant approved", "consultantId", id, "reviewedBy", actor.ID)
	return consultant, nil
}

// Reject moves the profile to rejected with a mandatory reason.
func (s *ConsultantService) Reject(ctx context.Context, db *gorm.DB, actor moderation.Actor, id, reason string) (*models.Consultant, error) {
	consultant, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if err := moderation.Reject(&consultant.Review, actor, reason); err != nil {
		return nil, err
	}
	if err := s.consultants.Update(db, consultant); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyCacheInvalidate(KeyConsultants, "")
	s.notifier.NotifyDataUpdate(KeyConsultants, consultant, consultant.UserID)
	logger.CtxInfo(ctx, "consultant rejected", "consultantId", id, "reviewedBy", actor.ID)
	return consultant, nil
}

func (s *ConsultantService) find(db *gorm.DB, id string) (*models.Consultant, error) {
	consultant, err := s.consultants.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrConsultantNotFound) {
			return nil, apperrors.ErrNotFound(err, "consultant", "Consultant not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return consultant, nil
}

func applyConsultantUpdate(consultant *models.Consultant, req *dto.UpdateConsultantRequest) {
	if req.Name != nil {
		consultant.Name = *req.Name
	}
	if req.Designation != nil {
		consultant.Designation = *req.Designation
	}
	if req.Experience != nil {
		consultant.Experience = *req.Experience
	}
	if req.Fee != nil {
		consultant.Fee = *req.Fee
	}
	if req.FeeType != nil {
		consultant.FeeType = models.FeeType(*req.FeeType)
	}
	if req.Expertise != nil {
		consultant.Expertise = *req.Expertise
	}
	if req.Certifications != nil {
		consultant.Certifications = *req.Certifications
	}
	if req.Languages != nil {
		consultant.Languages = []string(*req.Languages)
	}
	if req.Address != nil {
		consultant.AddressText = *req.Address
	}
	if req.Location != nil {
		consultant.Location = *req.Location
	}
	if req.City != nil {
		consultant.City = *req.City
	}
	if req.State != nil {
		consultant.State = *req.State
	}
	if req.Pincode != nil {
		consultant.Pincode = *req.Pincode
	}
	if req.Locality != nil {
		consultant.Locality = *req.Locality
	}
	if req.Image != nil {
		consultant.Image = *req.Image
	}
	if req.IDProof != nil {
		consultant.IDProof = *req.IDProof
	}
}
