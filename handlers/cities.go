package handlers

import (
	"net/http"

	"github.com/dolevhayut/mineral-gas-sub001/cities"
	"github.com/dolevhayut/mineral-gas-sub001/config"

	"github.com/gin-gonic/gin"
)

// CityClient is replaceable so tests can point it at a fake registry.
var CityClient = cities.NewClient(config.CitiesAPIURL)

// GetCities returns the city names in the serviced northern districts,
// fetched live from the government registry.
func GetCities(c *gin.Context) {
	names, err := CityClient.NorthernCities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "City registry unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(names), "cities": names})
}
