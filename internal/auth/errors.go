package auth

import (
	"net/http"

	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
)

const (
	incorrectLoginIDPassword = "INCORRECT_LOGIN_ID_PASSWORD" // errInfo
)

var (
	ErrIncorrectLoginIDPassword = sharedError.NewDomainError(incorrectLoginIDPassword)
)

func init() {
	sharedError.RegisterDomainErrorResponse(incorrectLoginIDPassword, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "로그인 ID 또는 비밀번호가 일치하지 않습니다.",
	})
}
