package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/http/response"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/services"
)

// PublicHandler serves the marketing-site forms.
type PublicHandler struct {
	log      *logger.Logger
	waitlist services.WaitlistService
	contact  services.ContactService
}

func NewPublicHandler(log *logger.Logger, waitlist services.WaitlistService, contact services.ContactService) *PublicHandler {
	return &PublicHandler{log: log.With("handler", "PublicHandler"), waitlist: waitlist, contact: contact}
}

// POST /api/waitlist
func (ph *PublicHandler) JoinWaitlist(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	added, err := ph.waitlist.Join(c.Request.Context(), req.Email)
	if err != nil {
		response.RespondAPIError(c, ph.log, err)
		return
	}
	if !added {
		response.RespondOK(c, gin.H{"message": "You're already on the list!"})
		return
	}
	response.RespondCreated(c, gin.H{"message": "Success"})
}

// POST /api/contact
func (ph *PublicHandler) Contact(c *gin.Context) {
	var req services.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	if err := ph.contact.Send(c.Request.Context(), req); err != nil {
		response.RespondAPIError(c, ph.log, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
