package validator

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

// RegisterAll registers all common validators defined in this package.
// Safe to call more than once (server bootstrap and every test router).
func RegisterAll() error {
	var err error
	registerOnce.Do(func() {
		err = register()
	})
	return err
}

func register() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	validators := map[string]validator.Func{
		"birthday": ValidateBirthday,
		"loginid":  ValidateLoginID,
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("%s validator 등록 실패: %w", tag, err)
		}
	}

	slog.Debug("공통 Validator 등록 완료", "validators", "birthday,loginid")
	return nil
}
