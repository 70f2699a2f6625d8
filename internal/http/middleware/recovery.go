package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodexplorer-backend/internal/http/response"
	"github.com/yungbote/foodexplorer-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

// Recovery turns a handler panic into the standard 500 envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			fields := []interface{}{"path", c.Request.URL.Path, "panic", fmt.Sprint(recovered)}
			if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
				fields = append(fields, "request_id", td.RequestID, "trace_id", td.TraceID)
			}
			log.Error("Panic recovered", fields...)
		}
		response.RespondError(c, fmt.Errorf("panic: %v", recovered))
	})
}
