package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/platform/ctxutil"
)

const internalMessage = "Internal server error"

type ErrorEnvelope struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"` // same as the X-Request-Id header
}

type MessageEnvelope struct {
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}

// RespondError writes the error envelope. Typed errors keep their status and
// message; anything else becomes a 500 with a fixed message.
func RespondError(c *gin.Context, err error) {
	if apiErr, ok := apierr.As(err); ok {
		c.AbortWithStatusJSON(apierr.StatusOf(apiErr), ErrorEnvelope{
			Status:    "error",
			Message:   apiErr.Error(),
			Code:      apiErr.Code,
			RequestID: requestID(c),
		})
		return
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorEnvelope{
		Status:    "error",
		Message:   internalMessage,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	if c.Request == nil {
		return ""
	}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		return td.RequestID
	}
	return ""
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageEnvelope{Message: msg})
}
