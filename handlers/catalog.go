package handlers

import (
	"net/http"

	"tablemate/services/catalog"

	"github.com/gin-gonic/gin"
)

// ListRestaurantsHandler returns the full catalog.
func ListRestaurantsHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"restaurants": cat.All()})
	}
}

// CatalogOptionsHandler returns the distinct enumerations a client can
// offer as suggestions: areas, cuisines, vibe tags and dietary tags.
func CatalogOptionsHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"areas":    cat.Areas(),
			"cuisines": cat.Cuisines(),
			"vibes":    cat.Vibes(),
			"dietary":  cat.DietaryTags(),
		})
	}
}
