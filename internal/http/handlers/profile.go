package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/http/response"
	"github.com/pathwise/pathwise-backend/internal/insight"
	"github.com/pathwise/pathwise-backend/internal/services"
)

type ProfileHandler struct {
	profileService  services.ProfileService
	behaviorService services.BehaviorService
}

func NewProfileHandler(profileService services.ProfileService, behaviorService services.BehaviorService) *ProfileHandler {
	return &ProfileHandler{
		profileService:  profileService,
		behaviorService: behaviorService,
	}
}

// GET /onboarding/questionnaire
func (h *ProfileHandler) GetQuestionnaire(c *gin.Context) {
	response.RespondOK(c, gin.H{"questions": h.profileService.Questionnaire()})
}

// POST /users/:id/onboarding
func (h *ProfileHandler) SubmitOnboarding(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	var req domain.OnboardingSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	profile, err := h.profileService.SubmitOnboarding(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, "onboarding_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"profile": profile})
}

// GET /users/:id/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "profile_fetch_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"profile": profile})
}

// POST /users/:id/profile/refresh?window_days=30
func (h *ProfileHandler) RefreshProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	windowDays := parseWindowDays(c)

	result, err := h.profileService.Refresh(c.Request.Context(), userID, windowDays)
	if err != nil {
		respondServiceError(c, "profile_refresh_failed", err)
		return
	}
	response.RespondOK(c, result)
}

// GET /users/:id/behavior/aggregate?window_days=30
func (h *ProfileHandler) GetAggregate(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	windowDays := parseWindowDays(c)

	agg, err := h.behaviorService.ComputeAggregate(c.Request.Context(), userID, windowDays)
	if err != nil {
		respondServiceError(c, "aggregate_failed", err)
		return
	}
	response.RespondOK(c, agg)
}

func parseWindowDays(c *gin.Context) int {
	raw := c.Query("window_days")
	if raw == "" {
		return insight.DefaultWindowDays
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return insight.DefaultWindowDays
	}
	return v
}
