package middleware

import (
	"errors"
	"net/http"
	"strings"

	sharedContext "github.com/changhyeonkim/sales-crm/internal/shared/context"
	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/changhyeonkim/sales-crm/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"

	// LoginPath is where unauthenticated page requests are sent
	LoginPath = "/login"
)

// JWT error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
)

// Domain errors
var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
)

func init() {
	for _, info := range []string{missingToken, invalidToken, expiredToken, invalidClaims} {
		sharedError.RegisterDomainErrorResponse(info, sharedError.Unauthenticated)
	}
}

// JWT authenticates API requests. The bearer header wins over the session cookie.
func JWT(tm token.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, tm, cookieName); err != nil {
			resp := sharedError.Resolve(err)
			if resp == sharedError.InternalServerError {
				resp = sharedError.Unauthenticated
			}
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}

// WebSession authenticates page requests from the session cookie and
// redirects to the login form on failure.
func WebSession(tm token.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, tm, cookieName); err != nil {
			// stale cookie must not loop the browser back here
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tm token.Manager, cookieName string) error {
	log := logger.FromContext(c.Request.Context())

	raw, err := extractToken(c, cookieName)
	if err != nil {
		log.Debug("인증 토큰 없음",
			"step", "extract_token",
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
		)
		return err
	}

	claims, err := tm.ValidateToken(raw)
	if err != nil {
		log.Warn("JWT 토큰 검증 실패",
			"step", "validate_token",
			"error", err.Error(),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"user_agent", c.Request.UserAgent(),
		)
		return mapTokenError(err)
	}

	sharedContext.SetUser(c, claims.UserID, claims.LoginID)
	c.Request = c.Request.WithContext(logger.With(c.Request.Context(), "user_id", claims.UserID))
	return nil
}

func extractToken(c *gin.Context, cookieName string) (string, error) {
	if authHeader := c.GetHeader(AuthorizationHeader); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) || parts[1] == "" {
			return "", ErrInvalidToken
		}
		return parts[1], nil
	}

	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, nil
		}
	}

	return "", ErrMissingToken
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
