package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodexplorer-backend/internal/domain/user"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/platform/ctxutil"
)

// requestIdentity returns the caller attached by the auth middleware.
func requestIdentity(c *gin.Context) (user.Identity, error) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == 0 {
		return user.Identity{}, apierr.Unauthorized("token not provided")
	}
	return user.Identity{ID: rd.UserID, Name: rd.Name, Email: rd.Email, Role: rd.Role}, nil
}

// pathID parses the :id segment. An id that cannot name a row is reported
// the same way as a missing row.
func pathID(c *gin.Context, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apierr.NotFound(fmt.Sprintf("%s not found", label))
	}
	return uint(id), nil
}
