package handler

import (
	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req CreateCustomerRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	return bind(c, obj, c.ShouldBindJSON)
}

// BindQuery is BindJSON for query string parameters
func BindQuery(c *gin.Context, obj any) bool {
	return bind(c, obj, c.ShouldBindQuery)
}

func bind(c *gin.Context, obj any, fn func(any) error) bool {
	if err := fn(obj); err != nil {
		// Add error to context for middleware logging
		_ = c.Error(err)

		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(resp.Status, resp)
		} else {
			c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
		}
		return false
	}
	return true
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	_ = c.Error(err)

	c.JSON(errResp.Status, errResp)
}

// RespondDomainError resolves err to its registered response (500 when unknown)
func RespondDomainError(c *gin.Context, err error) {
	RespondError(c, err, sharedError.Resolve(err))
}
