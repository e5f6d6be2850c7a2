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

// AdvertisementService manages banner slots. Reading is public;
// every mutation is administrator-only.
type AdvertisementService struct {
	ads      repositories.AdvertisementRepository
	notifier Notifier
}

func NewAdvertisementService(ads repositories.AdvertisementRepository, notifier Notifier) *AdvertisementService {
	return &AdvertisementService{
		ads:      ads,
		notifier: notifierOrNoop(notifier),
	}
}

// List returns the banners for a page key ordered by position. An empty
// key returns every banner.
func (s *AdvertisementService) List(ctx context.Context, db *gorm.DB, pageKey string) ([]models.Advertisement, error) {
	ads, err := s.ads.FindAll(db, pageKey)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ads, nil
}

// Create places a new banner.
func (s *AdvertisementService) Create(ctx context.Context, db *gorm.DB, actor moderation.Actor, req *dto.CreateAdvertisementRequest) (*models.Advertisement, error) {
	if err := actor.CanModerate(); err != nil {
		return nil, err
	}

	adType := models.AdType(req.Type)
	if adType == "" {
		adType = models.AdTypeImage
	}
	if adType != models.AdTypeMultiple && req.URL == "" {
		return nil, apperrors.NewBadRequestError("An advertisement URL is required")
	}
	if adType == models.AdTypeMultiple && len(req.Files) == 0 {
		return nil, apperrors.NewBadRequestError("A multiple advertisement needs at least one file")
	}

	pageKey := req.PageKey
	if pageKey == "" {
		pageKey = "default"
	}

	ad := &models.Advertisement{
		Type:        adType,
		URL:         req.URL,
		PublicID:    req.PublicID,
		Position:    req.Position,
		PageKey:     pageKey,
		RedirectURL: req.RedirectURL,
		Files:       adFilesFromInput(req.Files),
	}

	if err := s.ads.Create(db, ad); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyDataUpdate(KeyAdvertisement, nil, "")
	logger.CtxInfo(ctx, "advertisement created", "adId", ad.ID, "pageKey", ad.PageKey)
	return ad, nil
}

// Update edits an existing banner.
func (s *AdvertisementService) Update(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string, req *dto.UpdateAdvertisementRequest) (*models.Advertisement, error) {
	if err := actor.CanModerate(); err != nil {
		return nil, err
	}

	ad, err := s.find(db, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		ad.Type = models.AdType(*req.Type)
	}
	if req.URL != nil {
		ad.URL = *req.URL
	}
	if req.PublicID != nil {
		ad.PublicID = *req.PublicID
	}
	if req.Position != nil {
		ad.Position = *req.Position
	}
	if req.PageKey != nil && *req.PageKey != "" {
		ad.PageKey = *req.PageKey
	}
	if req.RedirectURL != nil {
		ad.RedirectURL = *req.RedirectURL
	}
	if req.Files != nil {
		ad.Files = adFilesFromInput(*req.Files)
	}

	if err := s.ads.Update(db, ad); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyDataUpdate(KeyAdvertisement, nil, "")
	return ad, nil
}

// Delete removes a banner.
func (s *AdvertisementService) Delete(ctx context.Context, db *gorm.DB, actor moderation.Actor, id string) error {
	if err := actor.CanModerate(); err != nil {
		return err
	}

	if err := s.ads.Delete(db, id); err != nil {
		if errors.Is(err, repositories.ErrAdvertisementNotFound) {
			return apperrors.ErrNotFound(err, "advertisement", "Advertisement not found")
		}
		return apperrors.InternalError(err)
	}

	s.notifier.NotifyCacheInvalidate(KeyAdvertisement, "")
	logger.CtxInfo(ctx, "advertisement deleted", "adId", id)
	return nil
}

func (s *AdvertisementService) find(db *gorm.DB, id string) (*models.Advertisement, error) {
	ad, err := s.ads.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAdvertisementNotFound) {
			return nil, apperrors.ErrNotFound(err, "advertisement", "Advertisement not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return ad, nil
}

func adFilesFromInput(files []dto.AdFileInput) []models.AdFile {
	if len(files) == 0 {
		return nil
	}
	out := make([]models.AdFile, 0, len(files))
	for _, f := range files {
		fileType := models.AdType(f.Type)
		if fileType == "" {
			fileType = models.AdTypeImage
		}
		out = append(out, models.AdFile{
			URL:         f.URL,
			PublicID:    f.PublicID,
			Type:        fileType,
			RedirectURL: f.RedirectURL,
		})
	}
	return out
}
