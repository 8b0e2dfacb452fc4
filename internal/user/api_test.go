package user_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/changhyeonkim/sales-crm/internal/model"
	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/middleware"
	"github.com/changhyeonkim/sales-crm/internal/shared/testutil"
	"github.com/changhyeonkim/sales-crm/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userHandler := user.NewUserHandler(user.NewUserService(db, user.NewUserRepository()))

	router := testutil.SetupTestRouter()
	userV1 := router.Group("/api/v1/users")
	userV1.Use(middleware.JWT(testutil.NewMockTokenManager(), "crm_session"))
	{
		userV1.GET("/me", userHandler.GetProfile)
	}
	return router, db
}

func TestGetProfile_CountsOwnCustomers(t *testing.T) {
	// Given: user1 owns two customers, user2 one
	router, db := setupTestEnvironment(t)
	u1 := testutil.CreateTestUser(t, db, "user1")
	u2 := testutil.CreateTestUser(t, db, "user2")

	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	birthday := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range []*model.Customer{
		model.NewCustomer(u1.ID, "山田太郎", birthday, model.CustomerDetails{}, today),
		model.NewCustomer(u1.ID, "鈴木花子", birthday, model.CustomerDetails{}, today),
		model.NewCustomer(u2.ID, "山田太郎", birthday, model.CustomerDetails{}, today),
	} {
		require.NoError(t, db.Create(c).Error)
	}

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/users/me",
		Token:  testutil.MockAccessToken("1", "user1"),
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)
	var profile user.GetProfileResponse
	testutil.ParseResponse(t, recorder, &profile)
	assert.Equal(t, u1.ID, profile.ID)
	assert.Equal(t, "user1", profile.LoginID)
	assert.Equal(t, "Test user1", profile.Name)
	assert.Equal(t, int64(2), profile.CustomerCount)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/users/me",
		Token:  testutil.MockAccessToken("99", "ghost"),
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "USER-001", errorResponse.Code)
}

func TestGetProfile_RequiresToken(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/users/me",
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
