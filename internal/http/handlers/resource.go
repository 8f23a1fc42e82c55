package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/http/response"
	"github.com/pathwise/pathwise-backend/internal/services"
)

type ResourceHandler struct {
	resourceService services.ResourceService
}

func NewResourceHandler(resourceService services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// POST /resources
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req domain.LearningResource
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	id, err := h.resourceService.CreateResource(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "resource_create_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"resource_id": id})
}

// POST /concepts/:concept/resources
// body: { "resource_id": "...", "resource_order": 1, "recommended_for": [...] }
func (h *ResourceHandler) LinkResource(c *gin.Context) {
	var req struct {
		ResourceID     string   `json:"resource_id"`
		ResourceOrder  int      `json:"resource_order"`
		RecommendedFor []string `json:"recommended_for"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	concept := c.Param("concept")

	err := h.resourceService.LinkToConcept(c.Request.Context(), concept, req.ResourceID, req.ResourceOrder, req.RecommendedFor)
	if err != nil {
		respondServiceError(c, "resource_link_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"linked": true})
}

// GET /concepts/:concept/resources?learning_style=visual&difficulty_level=beginner
func (h *ResourceHandler) ListForConcept(c *gin.Context) {
	concept := c.Param("concept")
	style := optionalQuery(c, "learning_style")
	difficulty := optionalQuery(c, "difficulty_level")

	resources, err := h.resourceService.ListForConcept(c.Request.Context(), concept, style, difficulty)
	if err != nil {
		respondServiceError(c, "resource_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"resources": resources})
}

// GET /concepts/:concept?learning_style=visual
func (h *ResourceHandler) GetConcept(c *gin.Context) {
	concept := c.Param("concept")
	style := optionalQuery(c, "learning_style")

	detail, err := h.resourceService.GetConcept(c.Request.Context(), concept, style)
	if err != nil {
		respondServiceError(c, "concept_fetch_failed", err)
		return
	}
	response.RespondOK(c, detail)
}

// GET /resources/:id/analytics
func (h *ResourceHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.resourceService.GetAnalytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "resource_analytics_failed", err)
		return
	}
	response.RespondOK(c, analytics)
}

func optionalQuery(c *gin.Context, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}
