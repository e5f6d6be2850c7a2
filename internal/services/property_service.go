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

// PropertyService manages property listings and their review workflow.
type PropertyService struct {
	properties repositories.PropertyRepository
	notifier   Notifier
}

func NewPropertyService(properties repositories.PropertyRepository, notifier Notifier) *PropertyService {
	return &PropertyService{
		properties: properties,
		notifier:   notifierOrNoop(notifier),
	}
}

// Create registers a new listing for the actor. Every submission starts
// pending regardless of who submits it.
func (s *PropertyService) Create(ctx context.Context, db *gorm.DB, actor moderation.Actor, req *dto.CreatePropertyRequest) (*models.Property, error) {
	property := &models.Property{
		UserID:       actor.ID,
		Title:        req.Title,
		PropertyType: req.PropertyType,
		Description:  req.Description,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaSqft:     req.AreaSqft,
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
		Images: []string(req.Images),
		Videos: []string(req.Videos),
		Review: moderation.Review{Status: moderation.StatusPending},
	}

	if err := s.properties.Create(db, property); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyDataUpdate(KeyProperties, nil, "")
	logger.CtxInfo(ctx, "property created", "propertyId", property.ID, "userId", actor.ID)
	return property, nil
}

// List returns the public catalog: approved listings only, unless the
// actor is an administrator, who sees every status.
func (s *PropertyService) List(ctx context.Context, db *gorm.DB, actor moderation.Actor, filter dto.PropertyListFilter) ([]models.Property, error) {
	repoFilter := repositories.PropertyFilter{
		City:         filter.City,
		PropertyType: filter.PropertyType,
	}
	if !actor.Admin {
		repoFilter.Status = string(moderation.StatusApproved)
	}

	properties, err := s.properties.FindAll(db, repoFilter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return properties, nil
}

// ListMine returns the actor's own listings in every status.
func (s *PropertyService) ListMine(ctx context.Context, db *gorm.DB, userID string) ([]models.Property, error) {
	properties, err := s.properties.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return properties, nil
}

// Get returns one listing. Pending and rejected listings are visible to
// the owner and the administrator only; everyone else gets a miss.
func (s *PropertyService) Get(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) (*models.Property, error) {
	property, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if property.Status != moderation.StatusApproved && !actor.Admin && actor.ID != property.UserID {
		return nil, apperrors.ErrNotFound(repositories.ErrPropertyNotFound, "property", "Property not found")
	}
	return property, nil
}

// Update applies a partial edit. Only the owner or an administrator may
// edit, and the review state is left untouched: an approved listing
// stays approved and a rejected one stays rejected.
func (s *PropertyService) Update(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string, req *dto.UpdatePropertyRequest) (*models.Property, error) {
	property, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if err := actor.CanMutate(property.UserID); err != nil {
		return nil, err
	}

	applyPropertyUpdate(property, req)

	if err := s.properties.Update(db, property); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyDataUpdate(KeyProperties, nil, "")
	return property, nil
}

// Delete removes a listing. Owner or administrator only.
func (s *PropertyService) Delete(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) error {
	property, err := s.find(db, id)
	if err != nil {
		return err
	}
	if err := actor.CanMutate(property.UserID); err != nil {
		return err
	}

	if err := s.properties.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifier.NotifyCacheInvalidate(KeyProperties, "")
	logger.CtxInfo(ctx, "property deleted", "propertyId", id, "userId", actor.ID)
	return nil
}

// Approve moves the listing to approved, clearing any rejection reason.
func (s *PropertyService) Approve(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) (*models.Property, error) {
	property, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if err := moderation.Approve(&property.Review, actor); err != nil {
		return nil, err
	}
	if err := s.properties.Update(db, property); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Everyone refetches the listing; the owner also gets the new state.
	s.notifier.NotifyCacheInvalidate(KeyProperties, "")
	s.notifier.NotifyDataUpdate(KeyProperties, property, property.UserID)
	logger.CtxInfo(ctx, "property approved", "propertyId", id, "reviewedBy", actor.ID)
	return property, nil
}

// Reject moves the listing to rejected with a mandatory reason.
func (s *PropertyService) Reject(ctx context.Context, db *gorm.DB, actor moderation.Actor, id, reason string) (*models.Property, error) {
	property, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if err := moderation.Reject(&property.Review, actor, reason); err != nil {
		return nil, err
	}
	if err := s.properties.Update(db, property); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyCacheInvalidate(KeyProperties, "")
	s.notifier.NotifyDataUpdate(KeyProperties, property, property.UserID)
	logger.CtxInfo(ctx, "property rejected", "propertyId", id, "reviewedBy", actor.ID)
	return property, nil
}

func (s *PropertyService) find(db *gorm.DB, id string) (*models.Property, error) {
	property, err := s.properties.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrNotFound(err, "property", "Property not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return property, nil
}

func applyPropertyUpdate(property *models.Property, req *dto.UpdatePropertyRequest) {
	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.PropertyType != nil {
		property.PropertyType = *req.PropertyType
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.AreaSqft != nil {
		property.AreaSqft = *req.AreaSqft
	}
	if req.AddressLine1 != nil {
		property.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		property.AddressLine2 = *req.AddressLine2
	}
	if req.Landmark != nil {
		property.Landmark = *req.Landmark
	}
	if req.Locality != nil {
		property.Locality = *req.Locality
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.State != nil {
		property.State = *req.State
	}
	if req.Country != nil {
		property.Country = *req.Country
	}
	if req.Pincode != nil {
		property.Pincode = *req.Pincode
	}
	if req.Latitude != nil {
		property.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		property.Longitude = req.Longitude
	}
	if req.Images != nil {
		property.Images = []string(*req.Images)
	}
	if req.Videos != nil {
		property.Videos = []string(*req.Videos)
	}
}
