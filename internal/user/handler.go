package user

import (
	"net/http"

	sharedContext "github.com/changhyeonkim/sales-crm/internal/shared/context"
	"github.com/changhyeonkim/sales-crm/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *UserService
}

func NewUserHandler(userService *UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := sharedContext.RequireUserID(c)
	if !ok {
		return
	}

	response, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
