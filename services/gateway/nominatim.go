package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"croppulse/config"
	"croppulse/models"
	"croppulse/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	nominatimBaseURL = "https://nominatim.openstreetmap.org/reverse"
	geocodeCacheTTL  = 24 * time.Hour
)

// NominatimGateway reverse-geocodes coordinates via OpenStreetMap Nominatim.
// Responses are cached for a day; the usage policy requires a descriptive
// User-Agent and at most one request per second.
type NominatimGateway struct {
	httpClient *http.Client
	cache      *redis.Client
	userAgent  string
}

// NewNominatimGateway builds the gateway with the configured user agent.
func NewNominatimGateway(cache *redis.Client) *NominatimGateway {
	return &NominatimGateway{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		userAgent:  config.AppConfig.NominatimUserAgent,
	}
}

type nominatimResponse struct {
	Address struct {
		County        string `json:"county"`
		StateDistrict string `json:"state_district"`
		State         string `json:"state"`
		Municipality  string `json:"municipality"`
		Suburb        string `json:"suburb"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		Hamlet        string `json:"hamlet"`
	} `json:"address"`
}

func (g *NominatimGateway) Reverse(ctx context.Context, lat, lon float64) (*models.Location, error) {
	logger := utils.GetLogger()
	cacheKey := fmt.Sprintf("geocode:%.4f:%.4f", lat, lon)

	if g.cache != nil {
		cached, err := g.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var loc models.Location
			if err := json.Unmarshal([]byte(cached), &loc); err == nil {
				return &loc, nil
			}
		} else if err != redis.Nil {
			logger.Warn("geocode cache read failed", zap.Error(err))
		}
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lon", fmt.Sprintf("%.6f", lon))
	q.Set("format", "json")
	q.Set("zoom", "12")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nominatimBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var raw nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	county := raw.Address.County
	if county == "" {
		county = raw.Address.State
	}
	loc := &models.Location{
		// Kenyan counties come back suffixed, e.g. "Nakuru County".
		County:    strings.TrimSuffix(county, " County"),
		Subcounty: firstNonEmpty(raw.Address.StateDistrict, raw.Address.Municipality),
		Ward:      firstNonEmpty(raw.Address.Suburb, raw.Address.Town),
		Village:   firstNonEmpty(raw.Address.Village, raw.Address.Hamlet),
	}

	if g.cache != nil {
		if encoded, err := json.Marshal(loc); err == nil {
			if err := g.cache.Set(ctx, cacheKey, encoded, geocodeCacheTTL).Err(); err != nil {
				logger.Warn("geocode cache write failed", zap.Error(err))
			}
		}
	}
	return loc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
