package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/careerpath/careerpath-backend/internal/platform/ctxutil"
)

const (
	HeaderTraceID   = "X-Trace-Id"
	HeaderRequestID = "X-Request-Id"

	maxRequestIDLen = 64
)

// AttachTraceContext assigns a request id and a trace id to every request and
// echoes both in the response headers. An active span's trace id wins over a
// client supplied one.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := ctxutil.Trace{
			RequestID: clientRequestID(c.GetHeader(HeaderRequestID)),
			TraceID:   spanTraceID(c),
		}
		if tr.RequestID == "" {
			tr.RequestID = uuid.NewString()
		}
		if tr.TraceID == "" {
			tr.TraceID = clientRequestID(c.GetHeader(HeaderTraceID))
		}
		if tr.TraceID == "" {
			tr.TraceID = tr.RequestID
		}
		c.Request = c.Request.WithContext(ctxutil.WithTrace(c.Request.Context(), tr))
		c.Header(HeaderTraceID, tr.TraceID)
		c.Header(HeaderRequestID, tr.RequestID)
		c.Next()
	}
}

func spanTraceID(c *gin.Context) string {
	sc := trace.SpanContextFromContext(c.Request.Context())
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

// clientRequestID accepts short printable ids and drops anything else.
func clientRequestID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxRequestIDLen {
		return ""
	}
	for _, r := range v {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return v
}
