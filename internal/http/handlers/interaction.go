package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/data/repos"
	"github.com/pathwise/pathwise-backend/internal/http/response"
	"github.com/pathwise/pathwise-backend/internal/services"
)

var (
	errInvalidCompletion = errors.New("completion_percentage must be in [0,1]")
	errInvalidEngagement = errors.New("engagement_score must be in [1,5]")
)

type InteractionHandler struct {
	pathService services.LearningPathService
}

func NewInteractionHandler(pathService services.LearningPathService) *InteractionHandler {
	return &InteractionHandler{pathService: pathService}
}

// POST /interactions/:id/close
func (h *InteractionHandler) CloseInteraction(c *gin.Context) {
	interactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_interaction_id", err)
		return
	}

	var req struct {
		EndedAt              *time.Time `json:"ended_at"`
		DurationSeconds      int        `json:"duration_seconds"`
		CompletionPercentage float64    `json:"completion_percentage"`
		InteractionCount     int        `json:"interaction_count"`
		EngagementScore      *int       `json:"engagement_score"`
		VideoWatchPercentage *float64   `json:"video_watch_percentage"`
		VideoPausesCount     *int       `json:"video_pauses_count"`
		VideoRewindsCount    *int       `json:"video_rewinds_count"`
		VideoSpeed           *float64   `json:"video_speed"`
		TextScrollDepth      *float64   `json:"text_scroll_depth"`
		MarkedAsHelpful      *bool      `json:"marked_as_helpful"`
		MarkedAsConfusing    *bool      `json:"marked_as_confusing"`
		UserNotes            string     `json:"user_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.CompletionPercentage < 0 || req.CompletionPercentage > 1 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidCompletion)
		return
	}
	if req.EngagementScore != nil && (*req.EngagementScore < 1 || *req.EngagementScore > 5) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidEngagement)
		return
	}

	endedAt := time.Now().UTC()
	if req.EndedAt != nil {
		endedAt = req.EndedAt.UTC()
	}

	row, err := h.pathService.CloseInteraction(c.Request.Context(), interactionID, repos.InteractionClose{
		EndedAt:              endedAt,
		DurationSeconds:      req.DurationSeconds,
		CompletionPercentage: req.CompletionPercentage,
		InteractionCount:     req.InteractionCount,
		EngagementScore:      req.EngagementScore,
		VideoWatchPercentage: req.VideoWatchPercentage,
		VideoPausesCount:     req.VideoPausesCount,
		VideoRewindsCount:    req.VideoRewindsCount,
		VideoSpeed:           req.VideoSpeed,
		TextScrollDepth:      req.TextScrollDepth,
		MarkedAsHelpful:      req.MarkedAsHelpful,
		MarkedAsConfusing:    req.MarkedAsConfusing,
		UserNotes:            req.UserNotes,
	})
	if err != nil {
		respondServiceError(c, "interaction_close_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"interaction": row})
}
