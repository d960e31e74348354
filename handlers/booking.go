package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "tablemate/database/repository/booking"
	profileRepo "tablemate/database/repository/profile"
)

// ListBookingsHandler returns an account's booking history, newest first.
func ListBookingsHandler(bookings bookingRepo.BookingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		accountID := c.Param("accountId")
		if accountID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "accountId is required"})
			return
		}

		list, err := bookings.ListByAccount(accountID)
		if err != nil {
			logger.Error("failed to list bookings", zap.String("accountID", accountID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": list})
	}
}

// GetProfileHandler returns the learned taste profile for an account.
func GetProfileHandler(profiles profileRepo.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		accountID := c.Param("accountId")
		if accountID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "accountId is required"})
			return
		}

		prof, err := profiles.Get(accountID)
		if err != nil {
			logger.Error("failed to get profile", zap.String("accountID", accountID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve profile"})
			return
		}
		c.JSON(http.StatusOK, prof)
	}
}
