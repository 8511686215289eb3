package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moderation-backend/internal/service"
)

const (
	defaultHistoryLimit  = 10
	defaultHistoryOffset = 0
)

type ModerationHandler interface {
	CheckContent(c *gin.Context)
	GetHistory(c *gin.Context)
	GetStats(c *gin.Context)
}

type moderationHandler struct {
	moderationService service.ModerationService
	logger            *zap.Logger
}

func NewModerationHandler(moderationService service.ModerationService, logger *zap.Logger) ModerationHandler {
	return &moderationHandler{moderationService: moderationService, logger: logger}
}

type CheckContentRequest struct {
	Content     string `json:"content" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// CheckContent handles POST /api/moderation/check
func (h *moderationHandler) CheckContent(c *gin.Context) {
	var req CheckContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for moderation check", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.moderationService.CheckContent(c.Request.Context(), req.Content, req.ContentType)
	if err != nil {
		h.logger.Error("Failed to check content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": record})
}

// GetHistory handles GET /api/moderation/history
func (h *moderationHandler) GetHistory(c *gin.Context) {
	limit := parseQueryInt(c, "limit", defaultHistoryLimit)
	offset := parseQueryInt(c, "offset", defaultHistoryOffset)

	records, err := h.moderationService.GetHistory(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to get moderation history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve moderation history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": records})
}

// GetStats handles GET /api/moderation/stats
func (h *moderationHandler) GetStats(c *gin.Context) {
	stats, err := h.moderationService.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get moderation stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve moderation stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
