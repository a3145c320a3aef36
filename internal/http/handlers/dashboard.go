package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/http/response"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/services"
)

type DashboardHandler struct {
	log       *logger.Logger
	dashboard services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{log: log.With("handler", "DashboardHandler"), dashboard: dashboard}
}

// GET /api/dashboard
func (dh *DashboardHandler) Summary(c *gin.Context) {
	sum, err := dh.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, dh.log, err)
		return
	}
	response.RespondOK(c, sum)
}
