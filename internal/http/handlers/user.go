package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/http/response"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
	assessments services.AssessmentService
	saved       services.SavedResourceService
}

func NewUserHandler(log *logger.Logger, userService services.UserService, assessments services.AssessmentService, saved services.SavedResourceService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
		assessments: assessments,
		saved:       saved,
	}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, uh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}

// PATCH /api/user/profile
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	u, err := uh.userService.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, uh.log, err)
		return
	}
	response.RespondOK(c, u)
}

// GET /api/user/assessments
func (uh *UserHandler) ListAssessments(c *gin.Context) {
	history, err := uh.assessments.History(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, uh.log, err)
		return
	}
	response.RespondOK(c, history)
}

// GET /api/user/sidebar-stats
func (uh *UserHandler) SidebarStats(c *gin.Context) {
	stats, err := uh.saved.SidebarStats(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, uh.log, err)
		return
	}
	response.RespondOK(c, stats)
}
