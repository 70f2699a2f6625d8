package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodexplorer-backend/internal/http/response"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/services"
)

type UserHandler struct {
	authService services.AuthService
	userService services.UserService
}

func NewUserHandler(authService services.AuthService, userService services.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

// POST /users
func (uh *UserHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("name, email and password are required"))
		return
	}
	if _, err := uh.authService.Register(c.Request.Context(), req); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, response.MessageEnvelope{Message: "user registered successfully"})
}

// GET /users
func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.userService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, users)
}
