package testutil

import (
	"strings"

	"github.com/changhyeonkim/sales-crm/internal/shared/token"
)

// MockTokenManager is a mock implementation of token.Manager for testing.
// By default tokens look like "mock-access:<userID>:<loginID>" and validate back.
type MockTokenManager struct {
	GenerateAccessTokenFunc  func(userID, loginID string) (string, error)
	GenerateRefreshTokenFunc func(userID, loginID string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

const mockAccessPrefix = "mock-access:"

func (m *MockTokenManager) GenerateAccessToken(userID, loginID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, loginID)
	}
	return MockAccessToken(userID, loginID), nil
}

func (m *MockTokenManager) GenerateRefreshToken(userID, loginID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, loginID)
	}
	return "mock-refresh-token", nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	rest, ok := strings.CutPrefix(tokenString, mockAccessPrefix)
	if !ok {
		return nil, token.ErrInvalidToken
	}
	userID, loginID, ok := strings.Cut(rest, ":")
	if !ok || userID == "" {
		return nil, token.ErrInvalidClaims
	}
	return &token.Claims{UserID: userID, LoginID: loginID, TokenType: token.ACCESS}, nil
}

// Ensure MockTokenManager implements token.Manager
var _ token.Manager = (*MockTokenManager)(nil)

// NewMockTokenManager creates a new mock token manager with default behavior
func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

// MockAccessToken builds a token the default mock accepts
func MockAccessToken(userID, loginID string) string {
	return mockAccessPrefix + userID + ":" + loginID
}
