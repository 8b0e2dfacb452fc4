package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/changhyeonkim/sales-crm/internal/shared/database"
	"gorm.io/gorm"
)

type UserService struct {
	db             *gorm.DB
	userRepository *UserRepository
}

func NewUserService(db *gorm.DB, userRepository *UserRepository) *UserService {
	return &UserService{
		db:             db,
		userRepository: userRepository,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint32) (*GetProfileResponse, error) {
	var response *GetProfileResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		user, err := s.userRepository.FindByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("사용자를 찾을 수 없습니다 userID=%d %w", userID, ErrUserNotFound)
			}
			return fmt.Errorf("사용자 조회 실패: %w", err)
		}

		count, err := s.userRepository.CountCustomers(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("고객 수 조회 실패: %w", err)
		}

		response = &GetProfileResponse{
			ID:            user.ID,
			LoginID:       user.LoginID,
			Name:          user.Name,
			CustomerCount: count,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}
