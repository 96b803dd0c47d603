package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const geocodingEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

type GeocodingConfig struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func NewGeocodingConfig(apiKey string) *GeocodingConfig {
	return &GeocodingConfig{
		APIKey:  apiKey,
		BaseURL: geocodingEndpoint,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an API key was configured. Without one no lookup is
// attempted and facilities are saved without coordinates.
func (g *GeocodingConfig) Enabled() bool {
	return g != nil && g.APIKey != ""
}

// Geocode resolves an address to latitude/longitude using the first match
// returned by the Google Maps Geocoding API.
func (g *GeocodingConfig) Geocode(address string) (lat, lng float64, err error) {
	reqURL := fmt.Sprintf("%s?address=%s&key=%s", g.BaseURL, url.QueryEscape(address), url.QueryEscape(g.APIKey))

	resp, err := g.Client.Get(reqURL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query geocoding service: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var result geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocoding response: %v", err)
	}

	if result.Status != "OK" || len(result.Results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding result for address")
	}

	loc := result.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
