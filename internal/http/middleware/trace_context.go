package middleware

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/foodexplorer-backend/internal/platform/ctxutil"
)

const (
	HeaderTraceID   = "X-Trace-Id"
	HeaderRequestID = "X-Request-Id"
)

// Inbound ids are echoed into logs and response headers, so only short
// token-like values are taken from the client.
var inboundIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,64}$`)

func inboundID(c *gin.Context, header string) string {
	v := strings.TrimSpace(c.GetHeader(header))
	if !inboundIDPattern.MatchString(v) {
		return ""
	}
	return v
}

// RequestIDs tags every request with a request id and a trace id. An active
// span's trace id wins over a client header; anything missing or malformed is
// generated. Both ids are stored in the request context for the request log
// and the error envelope, and echoed back as response headers.
func RequestIDs() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := inboundID(c, HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		var traceID string
		if spanCtx := trace.SpanContextFromContext(c.Request.Context()); spanCtx.HasTraceID() {
			traceID = spanCtx.TraceID().String()
		}
		if traceID == "" {
			traceID = inboundID(c, HeaderTraceID)
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: reqID,
		}))
		c.Writer.Header().Set(HeaderTraceID, traceID)
		c.Writer.Header().Set(HeaderRequestID, reqID)
		c.Next()
	}
}
