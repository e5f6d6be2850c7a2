package services

import (
	"context"
	"strings"

	"github.com/myproparti-blip/My-pro-backend/internal/geo"
	"github.com/myproparti-blip/My-pro-backend/internal/logger"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

// LocationService wraps the geocoding providers behind the autocomplete
// and reverse lookup endpoints.
type LocationService struct {
	geo *geo.Client
}

func NewLocationService(client *geo.Client) *LocationService {
	return &LocationService{geo: client}
}

// Suggest returns place suggestions for a free-text query of at least
// two characters.
func (s *LocationService) Suggest(ctx context.Context, query string) ([]geo.Place, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, apperrors.ErrQueryTooShort
	}

	places, err := s.geo.Suggest(ctx, query)
	if err != nil {
		logger.CtxError(ctx, "location suggest failed", "error", err)
		return nil, apperrors.ErrUpstream(err, "location", "Location lookup failed")
	}
	if places == nil {
		places = []geo.Place{}
	}
	return places, nil
}

// Reverse resolves coordinates back to a place.
func (s *LocationService) Reverse(ctx context.Context, lat, lon string) (*geo.Place, error) {
	if strings.TrimSpace(lat) == "" || strings.TrimSpace(lon) == "" {
		return nil, apperrors.ErrLatLonRequired
	}

	place, err := s.geo.Reverse(ctx, lat, lon)
	if err != nil {
		logger.CtxError(ctx, "location reverse failed", "error", err)
		return nil, apperrors.ErrUpstream(err, "location", "Location lookup failed")
	}
	if place == nil {
		return nil, apperrors.ErrLocationUnknown
	}
	return place, nil
}
