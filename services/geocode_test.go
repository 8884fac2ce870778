package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNominatimSearchSuccess(t *testing.T) {
	var gotQuery, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "33.5138", "lon": "36.2765"}]`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, 2*time.Second)
	coords, err := g.Search(context.Background(), "دمشق، الحريقة")
	assert.NoError(t, err)
	assert.InDelta(t, 33.5138, coords.Latitude, 0.0001)
	assert.InDelta(t, 36.2765, coords.Longitude, 0.0001)

	// Lookups are scoped to Syria and asked for in Arabic
	assert.Equal(t, "دمشق، الحريقة سوريا", gotQuery)
	assert.Equal(t, "ar", gotLang)
}

func TestNominatimSearchNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, 2*time.Second)
	coords, err := g.Search(context.Background(), "عنوان غير موجود")
	assert.Nil(t, coords)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestNominatimSearchUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, 2*time.Second)
	_, err := g.Search(context.Background(), "دمشق")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestNominatimSearchMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, 2*time.Second)
	_, err := g.Search(context.Background(), "دمشق")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestNominatimSearchEmptyAddress(t *testing.T) {
	g := NewNominatimGeocoder("http://unused.invalid", 2*time.Second)

	_, err := g.Search(context.Background(), "   ")
	_, ok := IsValidationError(err)
	assert.True(t, ok)
}
