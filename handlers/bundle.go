package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	ChatHandler      gin.HandlerFunc
	ResetChatHandler gin.HandlerFunc

	// Catalog endpoints
	ListRestaurantsHandler gin.HandlerFunc
	CatalogOptionsHandler  gin.HandlerFunc

	// Account endpoints
	GetProfileHandler   gin.HandlerFunc
	ListBookingsHandler gin.HandlerFunc
}
