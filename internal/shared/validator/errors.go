package validator

import (
	"errors"
	"fmt"

	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/go-playground/validator/v10"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	// 첫 번째 validation error만 반환 (사용자 친화적)
	resp := sharedError.ValidationFailed
	resp.Message = Message(validationErrors[0])
	return &resp, true
}

// Message returns a user-friendly message for one field error
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "필수 항목을 입력해 주세요."
	case "min":
		return fmt.Sprintf("최소 %s자 이상이어야 합니다.", fe.Param())
	case "max":
		return fmt.Sprintf("최대 %s자까지 입력 가능합니다.", fe.Param())
	case "birthday":
		return "생년월일은 1900-01-01 이후, 오늘 이전의 YYYY-MM-DD 형식이어야 합니다."
	case "loginid":
		return "로그인 ID는 영문, 숫자, '_', '.', '-' 3~30자여야 합니다."
	default:
		return fmt.Sprintf("'%s' 필드가 올바르지 않습니다.", fe.Field())
	}
}
