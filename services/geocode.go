package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// countrySuffix scopes every lookup to Syria, matching how branch addresses
// are written on the site
const countrySuffix = " سوريا"

// Coordinates is a geocoding result
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves a free-text address to at most one coordinate candidate.
// Implementations must treat failure and no-match as ordinary outcomes:
// callers distinguish ErrNoMatch from ErrUpstreamUnavailable and never depend
// on geocoding succeeding.
type Geocoder interface {
	Search(ctx context.Context, address string) (*Coordinates, error)
}

// NominatimGeocoder looks addresses up against a Nominatim endpoint
type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewNominatimGeocoder creates a geocoder with a bounded request timeout so a
// slow upstream can never hang the console
func NewNominatimGeocoder(baseURL string, timeout time.Duration) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Search returns the best match for the address, ErrNoMatch when Nominatim
// has no candidate, or ErrUpstreamUnavailable on any transport or protocol
// failure
func (g *NominatimGeocoder) Search(ctx context.Context, address string) (*Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, NewValidationError("address", "address is required")
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", address+countrySuffix)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("Accept-Language", "ar")
	// Nominatim usage policy requires an identifying User-Agent
	req.Header.Set("User-Agent", "dar-almal-site/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("%w: malformed coordinates in response", ErrUpstreamUnavailable)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
