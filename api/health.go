package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fintrack/backend/logging"
	"github.com/fintrack/backend/models"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Health pings the database and the session store.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 500 {object} models.HealthResponse
// @Router /api/health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	now := h.now()
	sessionStore := "disabled"
	if h.auth.Stateful() {
		sessionStore = "connected"
		if err := h.auth.Ping(ctx); err != nil {
			logging.FromContext(c).Warn().Err(err).Msg("session store ping failed")
			sessionStore = "disconnected"
		}
	}

	if err := h.storage.Ping(ctx); err != nil {
		logging.FromContext(c).Error().Err(err).Msg("database ping failed")
		c.JSON(http.StatusInternalServerError, models.HealthResponse{
			Status:       "error",
			Database:     "disconnected",
			SessionStore: sessionStore,
			Message:      "database is unreachable",
			Timestamp:    now.UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:       "ok",
		Database:     "connected",
		SessionStore: sessionStore,
		Timestamp:    now.UTC(),
		Uptime:       now.Sub(h.started).Seconds(),
		Environment:  h.env,
		Port:         h.port,
	})
}
