package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/http/response"
	"github.com/pathwise/pathwise-backend/internal/services"
)

type PathHandler struct {
	pathService services.LearningPathService
}

func NewPathHandler(pathService services.LearningPathService) *PathHandler {
	return &PathHandler{pathService: pathService}
}

// GET /users/:id/path/:concept
func (h *PathHandler) GetPersonalizedPath(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	concept := c.Param("concept")

	path, err := h.pathService.GetPersonalizedPath(c.Request.Context(), userID, concept)
	if err != nil {
		respondServiceError(c, "path_fetch_failed", err)
		return
	}
	response.RespondOK(c, path)
}
