// Package geo proxies location autocomplete and reverse geocoding to
// Geoapify, falling back to GeoDB for city-level prefix search.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/myproparti-blip/My-pro-backend/internal/config"
)

// Place is a normalized suggestion from either upstream.
type Place struct {
	ID        any     `json:"id"`
	Source    string  `json:"source"`
	Name      string  `json:"name"`
	Formatted string  `json:"formatted"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Postcode  string  `json:"postcode,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Client struct {
	geoapifyKey string
	geodbURL    string
	geodbKey    string
	httpClient  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		geoapifyKey: cfg.Geo.GeoapifyKey,
		geodbURL:    cfg.Geo.GeodbURL,
		geodbKey:    cfg.Geo.GeodbKey,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type geoapifyFeature struct {
	Properties struct {
		PlaceID      string  `json:"place_id"`
		Name         string  `json:"name"`
		AddressLine1 string  `json:"address_line1"`
		Formatted    string  `json:"formatted"`
		City         string  `json:"city"`
		Town         string  `json:"town"`
		Village      string  `json:"village"`
		State        string  `json:"state"`
		Country      string  `json:"country"`
		Postcode     string  `json:"postcode"`
		Lat          float64 `json:"lat"`
		Lon          float64 `json:"lon"`
	} `json:"properties"`
}

type geoapifyResponse struct {
	Features []geoapifyFeature `json:"features"`
}

// Suggest queries Geoapify autocomplete first and falls back to GeoDB
// when Geoapify returns nothing.
func (c *Client) Suggest(ctx context.Context, query string) ([]Place, error) {
	places, err := c.suggestGeoapify(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(places) > 0 {
		return places, nil
	}
	return c.suggestGeodb(ctx, query)
}

func (c *Client) suggestGeoapify(ctx context.Context, query string) ([]Place, error) {
	u := fmt.Sprintf("https://api.geoapify.com/v1/geocode/autocomplete?text=%s&limit=7&apiKey=%s",
		url.QueryEscape(query), c.geoapifyKey)

	var parsed geoapifyResponse
	if err := c.getJSON(ctx, u, nil, &parsed); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(parsed.Features))
	for _, f := range parsed.Features {
		p := f.Properties
		name := p.Name
		if name == "" {
			name = p.AddressLine1
		}
		if name == "" {
			name = p.Formatted
		}
		places = append(places, Place{
			ID:        p.PlaceID,
			Source:    "geoapify",
			Name:      name,
			Formatted: p.Formatted,
			City:      firstNonEmpty(p.City, p.Town, p.Village),
			State:     p.State,
			Country:   p.Country,
			Postcode:  p.Postcode,
			Latitude:  p.Lat,
			Longitude: p.Lon,
		})
	}
	return places, nil
}

type geodbCity struct {
	ID        int     `json:"id"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geodbResponse struct {
	Data []geodbCity `json:"data"`
}

func (c *Client) suggestGeodb(ctx context.Context, query string) ([]Place, error) {
	u := fmt.Sprintf("%s?namePrefix=%s&limit=7", c.geodbURL, url.QueryEscape(query))
	headers := map[string]string{
		"X-RapidAPI-Key":  c.geodbKey,
		"X-RapidAPI-Host": "wft-geo-db.p.rapidapi.com",
	}

	var parsed geodbResponse
	if err := c.getJSON(ctx, u, headers, &parsed); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(parsed.Data))
	for _, city := range parsed.Data {
		places = append(places, Place{
			ID:        city.ID,
			Source:    "geodb",
			Name:      city.City,
			Formatted: fmt.Sprintf("%s, %s, %s", city.City, city.Region, city.Country),
			City:      city.City,
			State:     city.Region,
			Country:   city.Country,
			Latitude:  city.Latitude,
			Longitude: city.Longitude,
		})
	}
	return places, nil
}

// Reverse resolves lat/lon to the nearest known place, or nil when the
// upstream has nothing for these coordinates.
func (c *Client) Reverse(ctx context.Context, lat, lon string) (*Place, error) {
	u := fmt.Sprintf("https://api.geoapify.com/v1/geocode/reverse?lat=%s&lon=%s&apiKey=%s",
		url.QueryEscape(lat), url.QueryEscape(lon), c.geoapifyKey)

	var parsed geoapifyResponse
	if err := c.getJSON(ctx, u, nil, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Features) == 0 {
		return nil, nil
	}

	p := parsed.Features[0].Properties
	return &Place{
		Source:    "geoapify",
		Formatted: p.Formatted,
		City:      firstNonEmpty(p.City, p.Town, p.Village),
		State:     p.State,
		Country:   p.Country,
		Postcode:  p.Postcode,
		Latitude:  p.Lat,
		Longitude: p.Lon,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("geo: build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geo: request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return fmt.Errorf("geo: upstream status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("geo: decode response: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
