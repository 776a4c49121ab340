// Package handler exposes a read-only status API over the running bot.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kageo/backend/internal/game"
)

// Handler serves read-only views over the dispatcher's state.
type Handler struct {
	Dispatcher *game.Dispatcher
}

// NewHandler creates a new Handler instance.
func NewHandler(d *game.Dispatcher) *Handler {
	return &Handler{Dispatcher: d}
}

// Health reports process liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Moderators returns the registered moderator IDs.
func (h *Handler) Moderators(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"moderators": h.Dispatcher.Moderators()})
}

// Challengers returns the challenger records.
func (h *Handler) Challengers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"challengers": h.Dispatcher.Challengers()})
}

// Tables returns the names of the saved tables.
func (h *Handler) Tables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": h.Dispatcher.TableNames()})
}

// Speed returns the current typing speed in WPM.
func (h *Handler) Speed(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"speed_wpm": h.Dispatcher.SpeedWPM()})
}
