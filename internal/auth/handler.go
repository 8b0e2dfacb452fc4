package auth

import (
	"net/http"

	"github.com/changhyeonkim/sales-crm/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *AuthService
	session     SessionCookie
}

func NewAuthHandler(authService *AuthService, session SessionCookie) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		session:     session,
	}
}

// Login returns the token pair and also sets the session cookie,
// so a browser client of the JSON API can open the pages afterwards.
func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	a.session.Set(c, response.AccessToken)
	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) Signup(c *gin.Context) {
	var request SignupRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := a.authService.Signup(c.Request.Context(), &request); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{})
}

// Logout only drops the cookie; issued tokens stay valid until they expire
func (a *AuthHandler) Logout(c *gin.Context) {
	a.session.Clear(c)
	c.Status(http.StatusNoContent)
}
