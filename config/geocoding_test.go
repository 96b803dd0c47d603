package config

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geocoderFor(server *httptest.Server) *GeocodingConfig {
	g := NewGeocodingConfig("test-key")
	g.BaseURL = server.URL
	g.Client = server.Client()
	return g
}

func TestGeocode_FirstMatchWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "東京都台東区1-2-3", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{
			"status": "OK",
			"results": [
				{"geometry": {"location": {"lat": 35.7126, "lng": 139.7804}}},
				{"geometry": {"location": {"lat": 1.0, "lng": 2.0}}}
			]
		}`)
	}))
	defer server.Close()

	lat, lng, err := geocoderFor(server).Geocode("東京都台東区1-2-3")
	require.NoError(t, err)
	assert.InDelta(t, 35.7126, lat, 1e-9)
	assert.InDelta(t, 139.7804, lng, 1e-9)
}

func TestGeocode_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer server.Close()

	_, _, err := geocoderFor(server).Geocode("Unknown Place 123")
	assert.ErrorContains(t, err, "no geocoding result")
}

func TestGeocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := geocoderFor(server).Geocode("東京都")
	assert.ErrorContains(t, err, "status 500")
}

func TestGeocode_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	_, _, err := geocoderFor(server).Geocode("東京都")
	assert.ErrorContains(t, err, "decode")
}

func TestGeocodingEnabled(t *testing.T) {
	assert.False(t, NewGeocodingConfig("").Enabled())
	assert.True(t, NewGeocodingConfig("key").Enabled())

	var nilConfig *GeocodingConfig
	assert.False(t, nilConfig.Enabled())
}
