package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/changhyeonkim/sales-crm/internal/model"
	"github.com/changhyeonkim/sales-crm/internal/shared/database"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/changhyeonkim/sales-crm/internal/shared/token"
	"github.com/changhyeonkim/sales-crm/internal/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db             *gorm.DB
	userRepository *user.UserRepository
	tokenManager   token.Manager
}

func NewAuthService(db *gorm.DB, userRepository *user.UserRepository, tokenManager token.Manager) *AuthService {
	return &AuthService{
		db:             db,
		userRepository: userRepository,
		tokenManager:   tokenManager,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)
	masked := logger.MaskLoginID(request.LoginID)

	// 1. Find user by login id
	u, err := a.userRepository.FindByLoginID(ctx, a.db, request.LoginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("로그인 실패 - login id not found", "login_id", masked)
			return nil, fmt.Errorf("login: %w", ErrIncorrectLoginIDPassword) // Security: don't reveal if login id exists
		}
		log.Error("로그인 실패 - 알 수 없는 오류", "error", err)
		return nil, fmt.Errorf("로그인 실패: %w", err)
	}

	// 2. Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(request.Password)); err != nil {
		log.Warn("로그인 실패 - invalid password", "login_id", masked)
		return nil, fmt.Errorf("login: %w", ErrIncorrectLoginIDPassword)
	}

	// 3. Generate JWT tokens
	userID := strconv.FormatUint(uint64(u.ID), 10)
	accessToken, err := a.tokenManager.GenerateAccessToken(userID, u.LoginID)
	if err != nil {
		log.Error("access token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(userID, u.LoginID)
	if err != nil {
		log.Error("refresh token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	log.Info("로그인 성공", "login_id", masked)

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *AuthService) Signup(ctx context.Context, request *SignupRequest) error {
	log := logger.FromContext(ctx)
	masked := logger.MaskLoginID(request.LoginID)

	return database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		exists, err := a.userRepository.IsExist(ctx, tx, request.LoginID)
		if err != nil {
			log.Error("Failed to check user existence", "error", err)
			return fmt.Errorf("check user existence: %w", err)
		}
		if exists {
			log.Warn("User already exists", "login_id", masked)
			return fmt.Errorf("signup: %w", user.ErrUserAlreadyExists)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", "error", err)
			return fmt.Errorf("hash password: %w", err)
		}

		u := model.NewUser(request.LoginID, request.Name, string(hashedPassword))
		if err := a.userRepository.Create(ctx, tx, u); err != nil {
			if database.IsDuplicateKey(err) {
				// lost a race with a concurrent signup
				return fmt.Errorf("signup: %w", user.ErrUserAlreadyExists)
			}
			log.Error("Failed to create user", "error", err)
			return fmt.Errorf("create user: %w", err)
		}

		log.Info("User created successfully", "login_id", masked)
		return nil
	})
}
