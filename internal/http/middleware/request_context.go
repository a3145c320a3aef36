package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/platform/ctxutil"
)

const HeaderClientID = "X-Client-Id"

const maxClientIDLength = 128

// AttachRequestContext seeds the request data with the device id the browser sends.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := strings.TrimSpace(c.GetHeader(HeaderClientID))
		if len(clientID) > maxClientIDLength {
			clientID = clientID[:maxClientIDLength]
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{ClientID: clientID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
