package services

import (
	"context"
	"errors"
	"os"
	"time"

	"googlemaps.github.io/maps"
)

var (
	mapsClient  *maps.Client
	ErrNoAPIKey = errors.New("GOOGLE_MAPS_API_KEY environment variable not set")
)

// InitMapsClient initializes the Google Maps client used for appointment
// venue lookups.
func InitMapsClient() error {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		return ErrNoAPIKey
	}

	var err error
	mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return err
	}

	return nil
}

// SearchPlaces finds candidate venues (clinics, pharmacies, hospitals)
// matching the query, for appointment location autocomplete.
func SearchPlaces(query string) ([]maps.PlacesSearchResult, error) {
	if mapsClient == nil {
		if err := InitMapsClient(); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	request := &maps.TextSearchRequest{
		Query: query,
	}

	response, err := mapsClient.TextSearch(ctx, request)
	if err != nil {
		return nil, err
	}

	return response.Results, nil
}
