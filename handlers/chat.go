package handlers

import (
	"net/http"

	"tablemate/models"
	"tablemate/services/dialogue"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	profileRepo "tablemate/database/repository/profile"
)

// ChatHandler runs one dialogue turn: load the session and profile,
// hand the message to the controller, persist what changed.
func ChatHandler(ctrl *dialogue.Controller, store *dialogue.SessionStore, profiles profileRepo.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
			return
		}
		if req.AccountID == "" {
			req.AccountID = uuid.NewString()
		}

		ctx := c.Request.Context()

		sess, err := store.Get(ctx, req.AccountID)
		if err != nil {
			logger.Error("failed to load session", zap.String("accountID", req.AccountID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
			return
		}
		if sess == nil {
			sess = models.NewSession(req.AccountID, req.Flow)
		}

		prof, err := profiles.Get(req.AccountID)
		if err != nil {
			// a missing or unreachable profile never blocks the turn
			logger.Warn("failed to load profile", zap.String("accountID", req.AccountID), zap.Error(err))
			prof = &models.Profile{AccountID: req.AccountID}
		}

		resp := ctrl.HandleTurn(ctx, sess, prof, req.Text)

		if err := store.Set(ctx, sess); err != nil {
			logger.Error("failed to persist session", zap.String("accountID", req.AccountID), zap.Error(err))
		}
		if err := profiles.Save(prof); err != nil {
			logger.Error("failed to persist profile", zap.String("accountID", req.AccountID), zap.Error(err))
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ResetChatHandler drops the stored session so the next message starts
// a fresh conversation. The profile survives a reset.
func ResetChatHandler(store *dialogue.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		accountID := c.Param("accountId")
		if accountID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "accountId is required"})
			return
		}

		if err := store.Clear(c.Request.Context(), accountID); err != nil {
			logger.Error("failed to clear session", zap.String("accountID", accountID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cleared", "accountId": accountID})
	}
}
