package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careerpath/careerpath-backend/internal/http/response"
	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/services"
)

type AssessmentHandler struct {
	log         *logger.Logger
	assessments services.AssessmentService
}

func NewAssessmentHandler(log *logger.Logger, assessments services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{log: log.With("handler", "AssessmentHandler"), assessments: assessments}
}

// GET /api/questions
func (ah *AssessmentHandler) Questions(c *gin.Context) {
	response.RespondOK(c, gin.H{"questions": ah.assessments.Questions()})
}

// POST /api/quiz
// body: { "answers": { "<question id>": <value> } }
func (ah *AssessmentHandler) SubmitQuiz(c *gin.Context) {
	var req struct {
		Answers map[string]any `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	if len(req.Answers) == 0 {
		response.RespondAPIError(c, ah.log, apierr.Validationf("Missing answers"))
		return
	}
	rec, err := ah.assessments.SubmitQuiz(c.Request.Context(), req.Answers)
	if err != nil {
		response.RespondAPIError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{"id": rec.ID})
}

// GET /api/results/:id
func (ah *AssessmentHandler) GetResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, ah.log, apierr.NotFound("assessment"))
		return
	}
	view, err := ah.assessments.GetResult(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, ah.log, err)
		return
	}
	response.RespondOK(c, view)
}
