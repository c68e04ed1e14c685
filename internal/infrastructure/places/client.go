package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/skinpredict/backend/internal/domain"
)

// nearbyResponse mirrors the places API nearby-search payload
type nearbyResponse struct {
	Status  string  `json:"status"`
	Results []place `json:"results"`
}

type place struct {
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating       float64 `json:"rating"`
	PlaceID      string  `json:"place_id"`
	OpeningHours *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

// Client handles communication with the maps/places API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	log         *logrus.Entry
}

// NewClient creates a new places API client
func NewClient(apiKey, baseURL string) *Client {
	// Stay well under the default places quota; burst covers one request fan-out
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		log:         logrus.WithField("component", "places"),
	}
}

// NearbySearch returns stores near the coordinate matching the given place
// type and keyword. Unlike retailer scraping, places failures surface as
// errors: there is no offline fallback for physical store locations.
func (c *Client) NearbySearch(ctx context.Context, lat, lng float64, radius int, placeType, keyword string) ([]domain.Store, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: maps API key", domain.ErrMissingAPIKey)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/place/nearbysearch/json", c.baseURL)
	params := url.Values{}
	params.Add("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Add("radius", fmt.Sprintf("%d", radius))
	params.Add("type", placeType)
	params.Add("keyword", keyword)
	params.Add("key", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlacesAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrPlacesAPIFailure, resp.StatusCode, string(body))
	}

	var nearby nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&nearby); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if nearby.Status != "OK" && nearby.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("%w: API status %s", domain.ErrPlacesAPIFailure, nearby.Status)
	}

	stores := make([]domain.Store, 0, len(nearby.Results))
	for _, p := range nearby.Results {
		stores = append(stores, mapStore(p))
	}

	c.log.Debugf("nearby search (%f,%f r=%d %s/%s) returned %d stores",
		lat, lng, radius, placeType, keyword, len(stores))
	return stores, nil
}
