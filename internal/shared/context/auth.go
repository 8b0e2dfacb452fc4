package context

import (
	"strconv"

	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// Context keys for storing user authentication information
const (
	UserIDKey  = "user_id"
	LoginIDKey = "login_id"
)

// SetUser stores the authenticated user on the gin context
func SetUser(c *gin.Context, userID, loginID string) {
	c.Set(UserIDKey, userID)
	c.Set(LoginIDKey, loginID)
}

func GetUserID(c *gin.Context) (uint32, bool) {
	idStr := c.GetString(UserIDKey)
	if idStr == "" {
		return 0, false
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint32(id), true
}

func GetLoginID(c *gin.Context) string {
	return c.GetString(LoginIDKey)
}

// RequireUserID retrieves the authenticated user's ID from the Gin context.
// If missing, an AUTH-000 response is already sent when it returns false.
func RequireUserID(c *gin.Context) (uint32, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(sharedError.Unauthenticated.Status, sharedError.Unauthenticated)
		logger.FromContext(c.Request.Context()).Error("[API] context에 사용자 ID가 존재하지 않습니다.")
		return 0, false
	}
	return userID, true
}
