package handlers

import (
	"errors"
	"net/http"

	"carecircle/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchLocations finds candidate appointment venues via the Places API
func SearchLocations(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	results, err := services.SearchPlaces(query)
	if err != nil {
		if errors.Is(err, services.ErrNoAPIKey) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Location search not configured"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Location search failed", err)
		return
	}

	type venue struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		PlaceID          string `json:"place_id"`
	}

	venues := make([]venue, 0, len(results))
	for _, r := range results {
		venues = append(venues, venue{
			Name:             r.Name,
			FormattedAddress: r.FormattedAddress,
			PlaceID:          r.PlaceID,
		})
	}

	c.JSON(http.StatusOK, venues)
}
