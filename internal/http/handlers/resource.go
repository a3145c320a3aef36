package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/http/response"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/services"
)

type ResourceHandler struct {
	log   *logger.Logger
	saved services.SavedResourceService
}

func NewResourceHandler(log *logger.Logger, saved services.SavedResourceService) *ResourceHandler {
	return &ResourceHandler{log: log.With("handler", "ResourceHandler"), saved: saved}
}

// POST /api/resources/save
func (rh *ResourceHandler) ToggleSave(c *gin.Context) {
	var req services.ToggleSaveInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	saved, err := rh.saved.Toggle(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, rh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"saved": saved})
}

// GET /api/resources/saved
func (rh *ResourceHandler) ListSaved(c *gin.Context) {
	items, err := rh.saved.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, rh.log, err)
		return
	}
	response.RespondOK(c, items)
}
