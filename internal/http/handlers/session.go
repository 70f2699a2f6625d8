package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodexplorer-backend/internal/http/response"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/services"
)

type SessionHandler struct {
	authService services.AuthService
}

func NewSessionHandler(authService services.AuthService) *SessionHandler {
	return &SessionHandler{authService: authService}
}

// POST /sessions
func (sh *SessionHandler) Create(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("email and password are required"))
		return
	}
	session, err := sh.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, session)
}
