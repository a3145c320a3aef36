package response

import (
	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
	"github.com/careerpath/careerpath-backend/internal/platform/ctxutil"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

// RespondAPIError writes err using its public message. Errors without an
// apierr classification become a 500 and are logged with their cause.
func RespondAPIError(c *gin.Context, log *logger.Logger, err error) {
	apiErr := apierr.From(err)
	if apiErr == nil {
		apiErr = apierr.Internal(err)
	}
	if log != nil && apiErr.Status >= 500 {
		fields := []any{"path", c.FullPath(), "code", apiErr.Code, "error", err}
		if tr, ok := ctxutil.TraceFrom(c.Request.Context()); ok {
			fields = append(fields, tr.LogFields()...)
		}
		log.Error("request failed", fields...)
	}
	c.AbortWithStatusJSON(apiErr.Status, ErrorEnvelope{
		Error: APIError{
			Message: apiErr.PublicMessage(),
			Code:    apiErr.Code,
		},
	})
}

// RespondBadRequest reports a body that could not be decoded.
func RespondBadRequest(c *gin.Context, err error) {
	RespondAPIError(c, nil, apierr.Validationf("invalid request body: %v", err))
}
